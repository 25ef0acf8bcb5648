package forms

// LoginForm is the /login POST body.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterForm is the /register POST body.
type RegisterForm struct {
	FullName        string `form:"full_name" validate:"required,max=120"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// TrackForm starts tracking a subject.
type TrackForm struct {
	ApplicationType string `form:"application_type" validate:"omitempty,oneof=early_decision early_action regular_decision rolling"`
	Notes           string `form:"notes" validate:"max=2000"`
}

// StatusForm requests a workflow transition.
type StatusForm struct {
	Status      string  `form:"status" validate:"required"`
	AwardAmount float64 `form:"award_amount" validate:"omitempty,gte=0"`
}

// NotesForm edits an application's notes.
type NotesForm struct {
	Notes string `form:"notes" validate:"max=2000"`
}

// DeleteForm confirms a hard delete. The view asks first; the handler
// refuses to fire the request without the confirmation field.
type DeleteForm struct {
	Confirm string `form:"confirm" validate:"required,eq=true"`
}

// ProfileForm edits the academic profile.
type ProfileForm struct {
	FullName       string  `form:"full_name" validate:"required,max=120"`
	GraduationYear int     `form:"graduation_year" validate:"omitempty,gte=1900,lte=2100"`
	GPA            float64 `form:"gpa" validate:"omitempty,gte=0,lte=5"`
	SATScore       int     `form:"sat_score" validate:"omitempty,gte=400,lte=1600"`
	ACTScore       int     `form:"act_score" validate:"omitempty,gte=1,lte=36"`
	State          string  `form:"state" validate:"omitempty,len=2"`
	IntendedMajor  string  `form:"intended_major" validate:"max=120"`
}
