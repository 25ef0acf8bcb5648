package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmercer/compass/internal/service"
	"github.com/jmercer/compass/internal/session"
)

// Deps bundles what every handler needs: the backend client, the session
// manager, and the latest-wins search coordinator.
type Deps struct {
	API      *service.Client
	Sessions *session.Manager
	Searcher *service.Searcher
}

// bind builds the base template data for a request.
func bind(c *fiber.Ctx, sessions *session.Manager, extra fiber.Map) fiber.Map {
	_, signedIn := sessions.Token(c)
	m := fiber.Map{
		"SignedIn": signedIn,
		"Path":     c.Path(),
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

// friendlyMessage converts a backend error into the banner text shown next
// to the triggering control. Conflicts get their own wording so a duplicate
// tracking attempt doesn't read like an outage.
func friendlyMessage(err error) string {
	switch {
	case service.IsKind(err, service.ErrConflict):
		return "You're already tracking this one."
	case service.IsKind(err, service.ErrNotFound):
		return "That record could not be found."
	case service.IsKind(err, service.ErrValidation):
		return "Some of the submitted values were rejected. Please review and try again."
	case service.IsKind(err, service.ErrTransport):
		return "We couldn't reach the server. Please check your connection and try again."
	default:
		return "Something went wrong. Please try again."
	}
}

// handleAPIError renders err as an inline banner on the given view, except
// auth failures, which end the session and send the user to the login page.
func handleAPIError(c *fiber.Ctx, d Deps, err error, view string, data fiber.Map) error {
	if service.IsKind(err, service.ErrAuth) {
		d.Sessions.Clear(c)
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if data == nil {
		data = fiber.Map{}
	}
	data["Error"] = friendlyMessage(err)
	return c.Render(view, bind(c, d.Sessions, data), "layouts/main")
}

// fieldErrors pulls per-field validation details out of a backend error,
// when the backend returned structured detail.
func fieldErrors(err error) map[string]string {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return apiErr.Fields
	}
	return nil
}
