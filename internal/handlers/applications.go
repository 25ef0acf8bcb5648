package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/forms"
	"github.com/jmercer/compass/internal/service"
	"github.com/jmercer/compass/internal/session"
	"github.com/jmercer/compass/internal/workflow"
)

func dashboardPath(typ workflow.EntityType) string {
	if typ == workflow.EntityScholarship {
		return "/scholarships/dashboard"
	}
	return "/colleges/dashboard"
}

func subjectPath(typ workflow.EntityType, subjectID int64) string {
	if typ == workflow.EntityScholarship {
		return fmt.Sprintf("/scholarships/%d", subjectID)
	}
	return fmt.Sprintf("/institutions/%d", subjectID)
}

func redirectWithError(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path+"?error="+url.QueryEscape(msg), fiber.StatusSeeOther)
}

func redirectWithNotice(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path+"?notice="+url.QueryEscape(msg), fiber.StatusSeeOther)
}

// parseTypeAndID reads the :type and :id route params shared by every
// application action.
func parseTypeAndID(c *fiber.Ctx) (workflow.EntityType, int64, error) {
	typ, err := workflow.ParseEntityType(c.Params("type"))
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad id %q", c.Params("id"))
	}
	return typ, id, nil
}

// TrackHandler starts tracking a subject. A duplicate attempt comes back
// from the backend as a conflict and is surfaced as "already tracked" on
// the subject page, not as a generic failure.
func TrackHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		typ, subjectID, err := parseTypeAndID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}

		var form forms.TrackForm
		if err := c.BodyParser(&form); err != nil {
			return redirectWithError(c, subjectPath(typ, subjectID), "The submitted form could not be read.")
		}
		if fieldErrs := forms.Check(form); fieldErrs != nil {
			return redirectWithError(c, subjectPath(typ, subjectID), "Invalid tracking options.")
		}

		var appType, notes null.String
		if typ == workflow.EntityCollege && form.ApplicationType != "" {
			appType = null.StringFrom(form.ApplicationType)
		}
		if form.Notes != "" {
			notes = null.StringFrom(form.Notes)
		}

		_, err = d.API.CreateApplication(ctx, typ, session.Token(c), subjectID, appType, notes)
		if err != nil {
			if service.IsKind(err, service.ErrAuth) {
				d.Sessions.Clear(c)
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			return redirectWithError(c, subjectPath(typ, subjectID), friendlyMessage(err))
		}

		return redirectWithNotice(c, dashboardPath(typ), "Now tracking.")
	}
}

// StatusHandler commits a workflow transition. Legality is checked locally
// against the adjacency table before the backend is called; the backend
// stays the final authority on what it persists.
func StatusHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		typ, id, err := parseTypeAndID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}

		var form forms.StatusForm
		if err := c.BodyParser(&form); err != nil {
			return redirectWithError(c, dashboardPath(typ), "The submitted form could not be read.")
		}
		if fieldErrs := forms.Check(form); fieldErrs != nil {
			return redirectWithError(c, dashboardPath(typ), "Invalid status request.")
		}

		next, err := workflow.ParseStatus(form.Status, typ)
		if err != nil {
			return redirectWithError(c, dashboardPath(typ), "That status is not part of this workflow.")
		}
		current, err := workflow.ParseStatus(c.FormValue("from"), typ)
		if err != nil || !workflow.CanTransition(current, next, typ) {
			return redirectWithError(c, dashboardPath(typ), "That move isn't available from the current status.")
		}

		update := service.ApplicationUpdate{Status: strPtr(string(next))}
		if typ == workflow.EntityScholarship && next == workflow.StatusAccepted && form.AwardAmount > 0 {
			update.AwardAmount = &form.AwardAmount
		}

		if _, err := d.API.UpdateApplication(ctx, typ, session.Token(c), id, update); err != nil {
			if service.IsKind(err, service.ErrAuth) {
				d.Sessions.Clear(c)
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			return redirectWithError(c, dashboardPath(typ), friendlyMessage(err))
		}

		return redirectWithNotice(c, dashboardPath(typ), "Status updated to "+next.Label()+".")
	}
}

// NotesHandler updates an application's notes.
func NotesHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		typ, id, err := parseTypeAndID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}

		var form forms.NotesForm
		if err := c.BodyParser(&form); err != nil {
			return redirectWithError(c, dashboardPath(typ), "The submitted form could not be read.")
		}
		if fieldErrs := forms.Check(form); fieldErrs != nil {
			return redirectWithError(c, dashboardPath(typ), "Notes are too long.")
		}

		update := service.ApplicationUpdate{Notes: strPtr(form.Notes)}
		if _, err := d.API.UpdateApplication(ctx, typ, session.Token(c), id, update); err != nil {
			if service.IsKind(err, service.ErrAuth) {
				d.Sessions.Clear(c)
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			return redirectWithError(c, dashboardPath(typ), friendlyMessage(err))
		}

		return redirectWithNotice(c, dashboardPath(typ), "Notes saved.")
	}
}

// DeleteHandler hard-deletes an application. The view shows a blocking
// confirmation prompt; the handler additionally refuses to fire without
// the confirmation field, so a stray POST can't destroy a record.
func DeleteHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		typ, id, err := parseTypeAndID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}

		var form forms.DeleteForm
		if err := c.BodyParser(&form); err != nil || forms.Check(form) != nil {
			return redirectWithError(c, dashboardPath(typ), "Deletion was not confirmed.")
		}

		if err := d.API.DeleteApplication(ctx, typ, session.Token(c), id); err != nil {
			if service.IsKind(err, service.ErrAuth) {
				d.Sessions.Clear(c)
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
			return redirectWithError(c, dashboardPath(typ), friendlyMessage(err))
		}

		return redirectWithNotice(c, dashboardPath(typ), "Application removed.")
	}
}

func strPtr(s string) *string { return &s }
