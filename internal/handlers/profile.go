package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/forms"
	"github.com/jmercer/compass/internal/model"
	"github.com/jmercer/compass/internal/session"
)

// ProfileHandler renders the profile page with the account, academic
// profile, and settings.
func ProfileHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()
		token := session.Token(c)

		user, err := d.API.Me(ctx, token)
		if err != nil {
			return handleAPIError(c, d, err, "profile", nil)
		}
		profile, err := d.API.Profile(ctx, token)
		if err != nil {
			return handleAPIError(c, d, err, "profile", fiber.Map{"User": user})
		}
		settings, err := d.API.Settings(ctx, token)
		if err != nil {
			return handleAPIError(c, d, err, "profile", fiber.Map{"User": user, "Profile": profile})
		}

		return c.Render("profile", bind(c, d.Sessions, fiber.Map{
			"User":     user,
			"Profile":  profile,
			"Settings": settings,
			"Notice":   c.Query("notice"),
		}), "layouts/main")
	}
}

// UpdateProfileHandler saves the academic profile. Zero-valued optional
// numbers are written as absent, never as literal zeros.
func UpdateProfileHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var form forms.ProfileForm
		if err := c.BodyParser(&form); err != nil {
			return redirectWithError(c, "/profile", "The submitted form could not be read.")
		}
		if fieldErrs := forms.Check(form); fieldErrs != nil {
			user, _ := d.API.Me(ctx, session.Token(c))
			return c.Status(fiber.StatusBadRequest).Render("profile", bind(c, d.Sessions, fiber.Map{
				"User":        user,
				"FieldErrors": fieldErrs,
			}), "layouts/main")
		}

		p := model.Profile{FullName: form.FullName}
		if form.GraduationYear > 0 {
			p.GraduationYear = null.IntFrom(form.GraduationYear)
		}
		if form.GPA > 0 {
			p.GPA = null.Float64From(form.GPA)
		}
		if form.SATScore > 0 {
			p.SATScore = null.IntFrom(form.SATScore)
		}
		if form.ACTScore > 0 {
			p.ACTScore = null.IntFrom(form.ACTScore)
		}
		if form.State != "" {
			p.State = null.StringFrom(form.State)
		}
		if form.IntendedMajor != "" {
			p.IntendedMajor = null.StringFrom(form.IntendedMajor)
		}

		if _, err := d.API.UpdateProfile(ctx, session.Token(c), p); err != nil {
			return handleAPIError(c, d, err, "profile", nil)
		}
		return redirectWithNotice(c, "/profile", "Profile saved.")
	}
}

// UpdateSettingsHandler saves notification and privacy preferences.
func UpdateSettingsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		s := model.Settings{
			EmailDeadlineReminders: c.FormValue("email_deadline_reminders") == "on",
			EmailProductUpdates:    c.FormValue("email_product_updates") == "on",
			ProfileSearchable:      c.FormValue("profile_searchable") == "on",
		}
		if _, err := d.API.UpdateSettings(ctx, session.Token(c), s); err != nil {
			return handleAPIError(c, d, err, "profile", nil)
		}
		return redirectWithNotice(c, "/profile", "Settings saved.")
	}
}

// UploadHandler forwards a headshot or resume to the backend. Resume
// uploads come back with the profile already updated from the parsed
// document; the portal just re-renders it.
func UploadHandler(d Deps, kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		fh, err := c.FormFile("file")
		if err != nil {
			return redirectWithError(c, "/profile", "Choose a file to upload first.")
		}
		file, err := fh.Open()
		if err != nil {
			return redirectWithError(c, "/profile", "The uploaded file could not be read.")
		}
		defer file.Close()

		token := session.Token(c)
		if kind == "resume" {
			_, err = d.API.UploadResume(ctx, token, fh.Filename, file)
		} else {
			_, err = d.API.UploadHeadshot(ctx, token, fh.Filename, file)
		}
		if err != nil {
			return handleAPIError(c, d, err, "profile", nil)
		}
		return redirectWithNotice(c, "/profile", "Upload complete.")
	}
}
