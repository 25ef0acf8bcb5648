package workflow

import "fmt"

// Action is one forward transition offered from a status: the button label
// and the status committing it would move the application to.
type Action struct {
	Label      string
	NextStatus Status
}

// transitions is the static adjacency table for both workflows. Every
// non-terminal status maps to its ordered legal next statuses; terminal
// statuses are absent and read as an empty list.
var transitions = map[EntityType]map[Status][]Action{
	EntityCollege: {
		StatusResearching: {
			{Label: "Start Planning", NextStatus: StatusPlanning},
		},
		StatusPlanning: {
			{Label: "Start Application", NextStatus: StatusInProgress},
		},
		StatusInProgress: {
			{Label: "Mark Submitted", NextStatus: StatusSubmitted},
		},
		StatusSubmitted: {
			{Label: "Mark Accepted", NextStatus: StatusAccepted},
			{Label: "Mark Waitlisted", NextStatus: StatusWaitlisted},
			{Label: "Mark Rejected", NextStatus: StatusRejected},
		},
		StatusWaitlisted: {
			{Label: "Mark Accepted", NextStatus: StatusAccepted},
			{Label: "Mark Rejected", NextStatus: StatusRejected},
		},
		StatusAccepted: {
			{Label: "Enroll", NextStatus: StatusEnrolled},
			{Label: "Decline Offer", NextStatus: StatusDeclined},
		},
	},
	EntityScholarship: {
		StatusInterested: {
			{Label: "Start Planning", NextStatus: StatusPlanning},
			{Label: "Stop Pursuing", NextStatus: StatusNotPursuing},
		},
		StatusPlanning: {
			{Label: "Start Application", NextStatus: StatusInProgress},
			{Label: "Stop Pursuing", NextStatus: StatusNotPursuing},
		},
		StatusInProgress: {
			{Label: "Mark Submitted", NextStatus: StatusSubmitted},
			{Label: "Stop Pursuing", NextStatus: StatusNotPursuing},
		},
		StatusSubmitted: {
			{Label: "Mark Accepted", NextStatus: StatusAccepted},
			{Label: "Mark Rejected", NextStatus: StatusRejected},
		},
	},
}

// AvailableActions returns the forward transitions offered from current for
// the given entity type, in display order. Terminal statuses return an empty
// list. A status outside the enum for typ is an error.
func AvailableActions(current Status, typ EntityType) ([]Action, error) {
	if !IsValid(current, typ) {
		return nil, fmt.Errorf("invalid %s status %q", typ, current)
	}
	src := transitions[typ][current]
	out := make([]Action, len(src))
	copy(out, src)
	return out, nil
}

// CanTransition reports whether moving current → next is one of the edges
// offered for typ. It is a pure lookup; the backend remains the authority
// on what it actually accepts.
func CanTransition(current, next Status, typ EntityType) bool {
	for _, a := range transitions[typ][current] {
		if a.NextStatus == next {
			return true
		}
	}
	return false
}
