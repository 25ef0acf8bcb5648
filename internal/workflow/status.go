package workflow

import "fmt"

// EntityType distinguishes the two tracked-application workflows.
type EntityType string

const (
	EntityCollege     EntityType = "college"
	EntityScholarship EntityType = "scholarship"
)

// ParseEntityType validates a URL/form value as an entity type.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityCollege, EntityScholarship:
		return EntityType(s), nil
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

// Status is a tracked application's position in its workflow.
type Status string

// College application statuses
const (
	StatusResearching Status = "researching"
	StatusPlanning    Status = "planning"
	StatusInProgress  Status = "in_progress"
	StatusSubmitted   Status = "submitted"
	StatusAccepted    Status = "accepted"
	StatusWaitlisted  Status = "waitlisted"
	StatusRejected    Status = "rejected"
	StatusEnrolled    Status = "enrolled"
	StatusDeclined    Status = "declined"
)

// Scholarship-only statuses (planning through rejected are shared)
const (
	StatusInterested  Status = "interested"
	StatusNotPursuing Status = "not_pursuing"
)

// Info carries the render-only attributes of a status.
type Info struct {
	Label    string
	Category string // badge color bucket, nothing more
}

var statusInfo = map[Status]Info{
	StatusResearching: {Label: "Researching", Category: "progress"},
	StatusInterested:  {Label: "Interested", Category: "progress"},
	StatusPlanning:    {Label: "Planning", Category: "progress"},
	StatusInProgress:  {Label: "In Progress", Category: "progress"},
	StatusSubmitted:   {Label: "Submitted", Category: "pending"},
	StatusAccepted:    {Label: "Accepted", Category: "success"},
	StatusWaitlisted:  {Label: "Waitlisted", Category: "pending"},
	StatusRejected:    {Label: "Rejected", Category: "danger"},
	StatusEnrolled:    {Label: "Enrolled", Category: "success"},
	StatusDeclined:    {Label: "Declined", Category: "muted"},
	StatusNotPursuing: {Label: "Not Pursuing", Category: "muted"},
}

// collegeStatuses and scholarshipStatuses are the closed enums, in
// workflow order. Decision branches follow their branch point.
var collegeStatuses = []Status{
	StatusResearching,
	StatusPlanning,
	StatusInProgress,
	StatusSubmitted,
	StatusAccepted,
	StatusWaitlisted,
	StatusRejected,
	StatusEnrolled,
	StatusDeclined,
}

var scholarshipStatuses = []Status{
	StatusInterested,
	StatusPlanning,
	StatusInProgress,
	StatusSubmitted,
	StatusAccepted,
	StatusRejected,
	StatusNotPursuing,
}

var terminalStatuses = map[EntityType]map[Status]bool{
	EntityCollege: {
		StatusEnrolled: true,
		StatusDeclined: true,
		StatusRejected: true,
	},
	EntityScholarship: {
		StatusAccepted:    true,
		StatusRejected:    true,
		StatusNotPursuing: true,
	},
}

// Statuses returns the full enum for an entity type, in workflow order.
// The returned slice is a copy and safe to reorder.
func Statuses(typ EntityType) []Status {
	var src []Status
	switch typ {
	case EntityCollege:
		src = collegeStatuses
	case EntityScholarship:
		src = scholarshipStatuses
	}
	out := make([]Status, len(src))
	copy(out, src)
	return out
}

// InitialStatus is the state a new tracked application starts in.
func InitialStatus(typ EntityType) Status {
	if typ == EntityScholarship {
		return StatusInterested
	}
	return StatusResearching
}

// IsValid reports whether s is a member of the enum for typ.
func IsValid(s Status, typ EntityType) bool {
	for _, v := range Statuses(typ) {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s offers no further forward transition for typ.
func IsTerminal(s Status, typ EntityType) bool {
	return terminalStatuses[typ][s]
}

// ParseStatus validates a raw string against the enum for typ.
func ParseStatus(raw string, typ EntityType) (Status, error) {
	s := Status(raw)
	if !IsValid(s, typ) {
		return "", fmt.Errorf("invalid %s status %q", typ, raw)
	}
	return s, nil
}

// InfoFor returns the display attributes for a status. Unknown statuses get
// a muted fallback rather than an error; this is render-only data.
func InfoFor(s Status) Info {
	if info, ok := statusInfo[s]; ok {
		return info
	}
	return Info{Label: string(s), Category: "muted"}
}

// Label is shorthand for InfoFor(s).Label.
func (s Status) Label() string {
	return InfoFor(s).Label
}
