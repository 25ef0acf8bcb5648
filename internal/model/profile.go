package model

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// User is the authenticated account as reported by GET /auth/me.
type User struct {
	ID        int64
	Email     string
	FullName  string
	CreatedAt time.Time
}

// Profile is the user's academic profile, editable on the profile page.
type Profile struct {
	FullName       string
	GraduationYear null.Int
	GPA            null.Float64
	SATScore       null.Int
	ACTScore       null.Int
	State          null.String
	IntendedMajor  null.String
	HeadshotURL    null.String
	ResumeURL      null.String
}

// Settings are the user's notification and privacy preferences.
type Settings struct {
	EmailDeadlineReminders bool
	EmailProductUpdates    bool
	ProfileSearchable      bool
}
