package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/model"
	"github.com/jmercer/compass/internal/workflow"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func app(id int64, typ workflow.EntityType, status workflow.Status) model.TrackedApplication {
	return model.TrackedApplication{
		ID:        id,
		SubjectID: id * 100,
		Type:      typ,
		Status:    status,
	}
}

func withDeadline(a model.TrackedApplication, d time.Time) model.TrackedApplication {
	a.Deadline = null.TimeFrom(d)
	return a
}

func withAmountMax(a model.TrackedApplication, v float64) model.TrackedApplication {
	a.AmountMax = null.Float64From(v)
	return a
}

func TestBuild_emptyInput(t *testing.T) {
	v := Build(workflow.EntityScholarship, nil, now)

	assert.Equal(t, 0, v.Total)
	assert.Empty(t, v.UpcomingDeadlines)
	assert.Empty(t, v.Overdue)
	assert.Zero(t, v.TotalPotentialValue)

	// Every enum value is present with a zero count.
	for _, s := range workflow.Statuses(workflow.EntityScholarship) {
		count, ok := v.Summary[s]
		require.True(t, ok, "summary missing %s", s)
		assert.Equal(t, 0, count)
	}
}

func TestBuild_summaryCounts(t *testing.T) {
	apps := []model.TrackedApplication{
		app(1, workflow.EntityCollege, workflow.StatusResearching),
		app(2, workflow.EntityCollege, workflow.StatusResearching),
		app(3, workflow.EntityCollege, workflow.StatusSubmitted),
	}
	v := Build(workflow.EntityCollege, apps, now)

	assert.Equal(t, 3, v.Total)
	assert.Equal(t, 2, v.Summary[workflow.StatusResearching])
	assert.Equal(t, 1, v.Summary[workflow.StatusSubmitted])
	assert.Equal(t, 0, v.Summary[workflow.StatusEnrolled])
}

func TestBuild_deadlineDueToday(t *testing.T) {
	a := withDeadline(app(1, workflow.EntityCollege, workflow.StatusInProgress), now)
	v := Build(workflow.EntityCollege, []model.TrackedApplication{a}, now)

	require.Len(t, v.UpcomingDeadlines, 1)
	assert.Equal(t, 0, v.UpcomingDeadlines[0].DaysLeft, "deadline == now is due today")
	assert.Empty(t, v.Overdue, "due today is not overdue")
}

func TestBuild_deadlineEarlierTodayIsNotOverdue(t *testing.T) {
	// Backends commonly send bare dates, which parse to midnight. Checked at
	// midday the deadline is hours in the past but still due today.
	midnight := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	a := withDeadline(app(1, workflow.EntityCollege, workflow.StatusInProgress), midnight)

	v := Build(workflow.EntityCollege, []model.TrackedApplication{a}, now)

	assert.Empty(t, v.Overdue)
	require.Len(t, v.UpcomingDeadlines, 1)
	assert.Equal(t, 0, v.UpcomingDeadlines[0].DaysLeft)
}

func TestBuild_upcomingWindow(t *testing.T) {
	inWindow := withDeadline(app(1, workflow.EntityCollege, workflow.StatusPlanning), now.AddDate(0, 0, 29))
	atEdge := withDeadline(app(2, workflow.EntityCollege, workflow.StatusPlanning), now.AddDate(0, 0, 30))
	beyond := withDeadline(app(3, workflow.EntityCollege, workflow.StatusPlanning), now.AddDate(0, 0, 45))

	v := Build(workflow.EntityCollege, []model.TrackedApplication{beyond, atEdge, inWindow}, now)

	require.Len(t, v.UpcomingDeadlines, 2)
	// Sorted soonest first regardless of input order.
	assert.Equal(t, int64(1), v.UpcomingDeadlines[0].App.ID)
	assert.Equal(t, int64(2), v.UpcomingDeadlines[1].App.ID)
}

func TestBuild_upcomingTieBreaksByID(t *testing.T) {
	d := now.AddDate(0, 0, 7)
	second := withDeadline(app(9, workflow.EntityCollege, workflow.StatusPlanning), d)
	first := withDeadline(app(4, workflow.EntityCollege, workflow.StatusPlanning), d)

	v := Build(workflow.EntityCollege, []model.TrackedApplication{second, first}, now)

	require.Len(t, v.UpcomingDeadlines, 2)
	assert.Equal(t, int64(4), v.UpcomingDeadlines[0].App.ID)
	assert.Equal(t, int64(9), v.UpcomingDeadlines[1].App.ID)
}

func TestBuild_overdue(t *testing.T) {
	lateByWeek := withDeadline(app(1, workflow.EntityCollege, workflow.StatusInProgress), now.AddDate(0, 0, -7))
	lateByDay := withDeadline(app(2, workflow.EntityCollege, workflow.StatusSubmitted), now.AddDate(0, 0, -1))
	enrolled := withDeadline(app(3, workflow.EntityCollege, workflow.StatusEnrolled), now.AddDate(0, 0, -7))

	v := Build(workflow.EntityCollege, []model.TrackedApplication{lateByDay, lateByWeek, enrolled}, now)

	require.Len(t, v.Overdue, 2, "terminal statuses are never overdue")
	// Most overdue first.
	assert.Equal(t, int64(1), v.Overdue[0].App.ID)
	assert.Equal(t, int64(2), v.Overdue[1].App.ID)
	assert.Negative(t, v.Overdue[0].DaysLeft)
}

func TestBuild_totalPotentialValue(t *testing.T) {
	live := withAmountMax(app(1, workflow.EntityScholarship, workflow.StatusInProgress), 1000)
	rejected := withAmountMax(app(2, workflow.EntityScholarship, workflow.StatusRejected), 2500)
	noAmount := app(3, workflow.EntityScholarship, workflow.StatusInterested)

	v := Build(workflow.EntityScholarship, []model.TrackedApplication{live, rejected, noAmount}, now)

	assert.Equal(t, 1000.0, v.TotalPotentialValue, "rejected and amount-less apps are skipped")
}

func TestBuild_exactAmountWinsOverMax(t *testing.T) {
	a := withAmountMax(app(1, workflow.EntityScholarship, workflow.StatusSubmitted), 5000)
	a.AmountExact = null.Float64From(1500)

	v := Build(workflow.EntityScholarship, []model.TrackedApplication{a}, now)
	assert.Equal(t, 1500.0, v.TotalPotentialValue)
}

func TestBuild_collegeHasNoPotentialValue(t *testing.T) {
	a := withAmountMax(app(1, workflow.EntityCollege, workflow.StatusSubmitted), 5000)
	v := Build(workflow.EntityCollege, []model.TrackedApplication{a}, now)
	assert.Zero(t, v.TotalPotentialValue)
}

func TestBuild_idempotentAndNonMutating(t *testing.T) {
	apps := []model.TrackedApplication{
		withDeadline(app(2, workflow.EntityScholarship, workflow.StatusPlanning), now.AddDate(0, 0, 3)),
		withDeadline(app(1, workflow.EntityScholarship, workflow.StatusInterested), now.AddDate(0, 0, 1)),
	}
	snapshot := make([]model.TrackedApplication, len(apps))
	copy(snapshot, apps)

	first := Build(workflow.EntityScholarship, apps, now)
	second := Build(workflow.EntityScholarship, apps, now)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, apps, "input order must be preserved")
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{"exactly now", now, 0},
		{"later today", now.Add(6 * time.Hour), 1},
		{"one day out", now.AddDate(0, 0, 1), 1},
		{"yesterday", now.AddDate(0, 0, -1), -1},
		{"half a day ago", now.Add(-12 * time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.deadline, now))
		})
	}
}

func TestFilterByStatus(t *testing.T) {
	apps := []model.TrackedApplication{
		app(1, workflow.EntityCollege, workflow.StatusResearching),
		app(2, workflow.EntityCollege, workflow.StatusSubmitted),
		app(3, workflow.EntityCollege, workflow.StatusResearching),
	}

	all := FilterByStatus(apps, "all")
	assert.Len(t, all, 3)

	researching := FilterByStatus(apps, "researching")
	require.Len(t, researching, 2)
	assert.Equal(t, int64(1), researching[0].ID)
	assert.Equal(t, int64(3), researching[1].ID)

	assert.Empty(t, FilterByStatus(apps, "enrolled"))
}

func TestSortBy_deadlineStable(t *testing.T) {
	d := now.AddDate(0, 0, 10)
	apps := []model.TrackedApplication{
		withDeadline(app(7, workflow.EntityCollege, workflow.StatusPlanning), d),
		withDeadline(app(3, workflow.EntityCollege, workflow.StatusPlanning), d),
		withDeadline(app(5, workflow.EntityCollege, workflow.StatusPlanning), now.AddDate(0, 0, 1)),
	}

	sorted := SortBy(apps, SortByDeadline)

	require.Len(t, sorted, 3)
	assert.Equal(t, int64(5), sorted[0].ID)
	// Equal deadlines keep their original relative order: 7 before 3.
	assert.Equal(t, int64(7), sorted[1].ID)
	assert.Equal(t, int64(3), sorted[2].ID)

	// The input slice is untouched.
	assert.Equal(t, int64(7), apps[0].ID)
}

func TestSortBy_missingKeysSortLast(t *testing.T) {
	apps := []model.TrackedApplication{
		app(1, workflow.EntityScholarship, workflow.StatusInterested), // no deadline
		withDeadline(app(2, workflow.EntityScholarship, workflow.StatusInterested), now.AddDate(0, 0, 2)),
	}
	sorted := SortBy(apps, SortByDeadline)
	assert.Equal(t, int64(2), sorted[0].ID)
	assert.Equal(t, int64(1), sorted[1].ID)
}

func TestSortBy_amount(t *testing.T) {
	small := withAmountMax(app(1, workflow.EntityScholarship, workflow.StatusInterested), 500)
	big := withAmountMax(app(2, workflow.EntityScholarship, workflow.StatusInterested), 9000)
	none := app(3, workflow.EntityScholarship, workflow.StatusInterested)

	sorted := SortBy([]model.TrackedApplication{small, none, big}, SortByAmount)

	assert.Equal(t, int64(2), sorted[0].ID)
	assert.Equal(t, int64(1), sorted[1].ID)
	assert.Equal(t, int64(3), sorted[2].ID, "amount-less apps sort last")
}

func TestSortBy_status(t *testing.T) {
	apps := []model.TrackedApplication{
		app(1, workflow.EntityCollege, workflow.StatusSubmitted),
		app(2, workflow.EntityCollege, workflow.StatusResearching),
	}
	sorted := SortBy(apps, SortByStatus)
	assert.Equal(t, int64(2), sorted[0].ID)
}
