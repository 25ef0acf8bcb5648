package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmercer/compass/internal/dashboard"
	"github.com/jmercer/compass/internal/model"
	"github.com/jmercer/compass/internal/session"
	"github.com/jmercer/compass/internal/workflow"
)

// ApplicationRow is one tracked application prepared for rendering: the
// record plus its status badge and the transition menu the workflow offers
// from its current status.
type ApplicationRow struct {
	App        model.TrackedApplication
	StatusInfo workflow.Info
	Actions    []workflow.Action
}

func buildRows(typ workflow.EntityType, apps []model.TrackedApplication) []ApplicationRow {
	rows := make([]ApplicationRow, len(apps))
	for i, app := range apps {
		actions, err := workflow.AvailableActions(app.Status, typ)
		if err != nil {
			actions = nil
		}
		rows[i] = ApplicationRow{
			App:        app,
			StatusInfo: workflow.InfoFor(app.Status),
			Actions:    actions,
		}
	}
	return rows
}

// summaryRow pairs a status with its count for ordered template iteration
// (a bare map would render in random order).
type summaryRow struct {
	Status workflow.Status
	Info   workflow.Info
	Count  int
}

// DashboardHandler renders the tracking dashboard for one entity type. The
// full application set is refetched on every request; filtering and sorting
// are pure derived views over that snapshot.
func DashboardHandler(d Deps, typ workflow.EntityType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		apps, err := d.API.TrackedApplications(ctx, typ, session.Token(c))
		if err != nil {
			return handleAPIError(c, d, err, "dashboard", fiber.Map{"Type": typ})
		}

		view := dashboard.Build(typ, apps, time.Now())

		filtered := dashboard.FilterByStatus(apps, c.Query("status", "all"))
		if key := c.Query("sort"); key != "" {
			filtered = dashboard.SortBy(filtered, key)
		}

		summary := make([]summaryRow, 0, len(view.Summary))
		for _, s := range workflow.Statuses(typ) {
			summary = append(summary, summaryRow{Status: s, Info: workflow.InfoFor(s), Count: view.Summary[s]})
		}

		return c.Render("dashboard", bind(c, d.Sessions, fiber.Map{
			"Type":            typ,
			"IsScholarship":   typ == workflow.EntityScholarship,
			"Total":           view.Total,
			"Summary":         summary,
			"Upcoming":        view.UpcomingDeadlines,
			"Overdue":         view.Overdue,
			"PotentialValue":  view.TotalPotentialValue,
			"Rows":            buildRows(typ, filtered),
			"Statuses":        workflow.Statuses(typ),
			"SelectedStatus":  c.Query("status", "all"),
			"SelectedSort":    c.Query("sort"),
			"Notice":          c.Query("notice"),
			"InlineError":     c.Query("error"),
		}), "layouts/main")
	}
}
