// Package dashboard derives the tracking dashboard from a user's full set of
// tracked applications. Everything here is pure: inputs are never mutated and
// the same input always produces the same view.
package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/jmercer/compass/internal/model"
	"github.com/jmercer/compass/internal/workflow"
)

// upcomingWindowDays bounds the "coming up" deadline bucket.
const upcomingWindowDays = 30

// DeadlineItem is an application annotated with its day distance from now.
// DaysLeft is 0 for due-today and negative for overdue.
type DeadlineItem struct {
	App      model.TrackedApplication
	DaysLeft int
}

// View is the aggregated dashboard for one entity type.
type View struct {
	Type    workflow.EntityType
	Total   int
	Summary map[workflow.Status]int

	// UpcomingDeadlines holds applications due within the window, soonest
	// first. Overdue holds past-deadline applications still in a
	// non-terminal status, most overdue first.
	UpcomingDeadlines []DeadlineItem
	Overdue           []DeadlineItem

	// TotalPotentialValue is only populated for scholarship dashboards:
	// the sum of each still-live application's subject amount. Applications
	// without a stated amount are skipped, not counted as zero.
	TotalPotentialValue float64
}

// DaysUntil computes whole days from now to deadline, rounding up. A
// deadline equal to now yields 0 ("due today"); past deadlines go negative.
func DaysUntil(deadline, now time.Time) int {
	return int(math.Ceil(float64(deadline.Sub(now)) / float64(24*time.Hour)))
}

// Build aggregates apps into the dashboard view for typ. Applications whose
// status is not in the enum for typ are counted in Total but excluded from
// every bucket; missing deadlines and amounts are treated as absent.
func Build(typ workflow.EntityType, apps []model.TrackedApplication, now time.Time) View {
	v := View{
		Type:    typ,
		Total:   len(apps),
		Summary: make(map[workflow.Status]int),
	}
	for _, s := range workflow.Statuses(typ) {
		v.Summary[s] = 0
	}

	for _, app := range apps {
		if !workflow.IsValid(app.Status, typ) {
			continue
		}
		v.Summary[app.Status]++

		if app.Deadline.Valid {
			// Bucket by whole days, not raw time: a deadline earlier today is
			// due today, not overdue.
			days := DaysUntil(app.Deadline.Time, now)
			if days < 0 {
				if !workflow.IsTerminal(app.Status, typ) {
					v.Overdue = append(v.Overdue, DeadlineItem{App: app, DaysLeft: days})
				}
			} else if days <= upcomingWindowDays {
				v.UpcomingDeadlines = append(v.UpcomingDeadlines, DeadlineItem{App: app, DaysLeft: days})
			}
		}

		if typ == workflow.EntityScholarship &&
			app.Status != workflow.StatusRejected &&
			app.Status != workflow.StatusNotPursuing {
			if amount, ok := app.PotentialAmount(); ok {
				v.TotalPotentialValue += amount
			}
		}
	}

	// Both buckets order by deadline ascending: soonest-first for upcoming,
	// most-overdue-first for overdue. Ties break by ID ascending.
	byDeadline := func(items []DeadlineItem) {
		sort.SliceStable(items, func(i, j int) bool {
			di, dj := items[i].App.Deadline.Time, items[j].App.Deadline.Time
			if !di.Equal(dj) {
				return di.Before(dj)
			}
			return items[i].App.ID < items[j].App.ID
		})
	}
	byDeadline(v.UpcomingDeadlines)
	byDeadline(v.Overdue)

	return v
}

// FilterByStatus returns the applications matching status, or all of them
// for the sentinel "all". The input slice is not modified.
func FilterByStatus(apps []model.TrackedApplication, status string) []model.TrackedApplication {
	if status == "" || status == "all" {
		out := make([]model.TrackedApplication, len(apps))
		copy(out, apps)
		return out
	}
	var out []model.TrackedApplication
	for _, app := range apps {
		if string(app.Status) == status {
			out = append(out, app)
		}
	}
	return out
}

// Sort keys accepted by SortBy.
const (
	SortByDeadline = "deadline"
	SortByAmount   = "amount"
	SortByStatus   = "status"
)

// SortBy returns a sorted copy of apps. Sorting is stable: equal keys keep
// their original relative order. Applications missing the sort key (no
// deadline, no amount) sort after those that have it. Unknown keys return
// an unsorted copy.
func SortBy(apps []model.TrackedApplication, key string) []model.TrackedApplication {
	out := make([]model.TrackedApplication, len(apps))
	copy(out, apps)

	switch key {
	case SortByDeadline:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Deadline.Valid != out[j].Deadline.Valid {
				return out[i].Deadline.Valid
			}
			if !out[i].Deadline.Valid {
				return false
			}
			return out[i].Deadline.Time.Before(out[j].Deadline.Time)
		})
	case SortByAmount:
		sort.SliceStable(out, func(i, j int) bool {
			ai, oki := out[i].PotentialAmount()
			aj, okj := out[j].PotentialAmount()
			if oki != okj {
				return oki
			}
			return ai > aj // largest award first
		})
	case SortByStatus:
		sort.SliceStable(out, func(i, j int) bool {
			return statusRank(out[i]) < statusRank(out[j])
		})
	}
	return out
}

// statusRank is a status's position in its workflow order, for sorting.
func statusRank(app model.TrackedApplication) int {
	for i, s := range workflow.Statuses(app.Type) {
		if s == app.Status {
			return i
		}
	}
	return len(workflow.Statuses(app.Type))
}
