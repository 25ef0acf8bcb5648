package model

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/workflow"
)

// College application type, chosen when the user starts tracking.
const (
	AppTypeEarlyDecision   = "early_decision"
	AppTypeEarlyAction     = "early_action"
	AppTypeRegularDecision = "regular_decision"
	AppTypeRolling         = "rolling"
)

// ApplicationTypes lists the valid college application types in display order.
var ApplicationTypes = []string{
	AppTypeEarlyDecision,
	AppTypeEarlyAction,
	AppTypeRegularDecision,
	AppTypeRolling,
}

// TrackedApplication is one user's record of intent and progress toward a
// single institution or scholarship. The backend owns the record; this type
// is the read-side view the portal works with. SubjectID never changes after
// creation — tracking a different subject means a new record.
type TrackedApplication struct {
	ID        int64
	SubjectID int64
	Type      workflow.EntityType
	Status    workflow.Status

	// Subject fields inherited at read time, not owned by the record.
	SubjectName string
	Deadline    null.Time
	AmountMax   null.Float64 // scholarship subject only
	AmountExact null.Float64 // scholarship subject only

	Notes           null.String
	ApplicationType null.String  // college only
	AwardAmount     null.Float64 // scholarship only, set when accepted

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Terminal reports whether the application's status offers no further
// forward transition.
func (a TrackedApplication) Terminal() bool {
	return workflow.IsTerminal(a.Status, a.Type)
}

// PotentialAmount returns the subject's exact amount when present, else its
// maximum amount. The second return is false when neither is set; callers
// must skip the record, never substitute zero.
func (a TrackedApplication) PotentialAmount() (float64, bool) {
	if a.AmountExact.Valid {
		return a.AmountExact.Float64, true
	}
	if a.AmountMax.Valid {
		return a.AmountMax.Float64, true
	}
	return 0, false
}
