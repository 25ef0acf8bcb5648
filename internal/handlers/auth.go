package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jmercer/compass/internal/forms"
)

// LoginPageHandler renders the login form.
func LoginPageHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := d.Sessions.Token(c); ok {
			return c.Redirect("/colleges/dashboard", fiber.StatusSeeOther)
		}
		return c.Render("login", bind(c, d.Sessions, nil), "layouts/main")
	}
}

// LoginHandler exchanges credentials for a token and establishes the
// session. Failures render inline on the form; nothing is thrown further.
func LoginHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var form forms.LoginForm
		if err := c.BodyParser(&form); err != nil {
			return c.Status(fiber.StatusBadRequest).Render("login", bind(c, d.Sessions, fiber.Map{
				"Error": "The submitted form could not be read.",
			}), "layouts/main")
		}
		if fieldErrs := forms.Check(form); fieldErrs != nil {
			return c.Status(fiber.StatusBadRequest).Render("login", bind(c, d.Sessions, fiber.Map{
				"FieldErrors": fieldErrs,
				"Email":       form.Email,
			}), "layouts/main")
		}

		token, err := d.API.Login(ctx, form.Email, form.Password)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).Render("login", bind(c, d.Sessions, fiber.Map{
				"Error": "Email or password is incorrect.",
				"Email": form.Email,
			}), "layouts/main")
		}

		d.Sessions.Establish(c, token)
		return c.Redirect("/colleges/dashboard", fiber.StatusSeeOther)
	}
}

// RegisterPageHandler renders the registration form.
func RegisterPageHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("register", bind(c, d.Sessions, nil), "layouts/main")
	}
}

// RegisterHandler creates an account, then logs straight in so the user
// lands on their (empty) dashboard.
func RegisterHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		var form forms.RegisterForm
		if err := c.BodyParser(&form); err != nil {
			return c.Status(fiber.StatusBadRequest).Render("register", bind(c, d.Sessions, fiber.Map{
				"Error": "The submitted form could not be read.",
			}), "layouts/main")
		}
		if fieldErrs := forms.Check(form); fieldErrs != nil {
			return c.Status(fiber.StatusBadRequest).Render("register", bind(c, d.Sessions, fiber.Map{
				"FieldErrors": fieldErrs,
				"Email":       form.Email,
				"FullName":    form.FullName,
			}), "layouts/main")
		}

		if _, err := d.API.Register(ctx, form.Email, form.Password, form.FullName); err != nil {
			data := fiber.Map{
				"Error":    friendlyMessage(err),
				"Email":    form.Email,
				"FullName": form.FullName,
			}
			if backendFields := fieldErrors(err); backendFields != nil {
				data["FieldErrors"] = backendFields
			}
			return c.Status(fiber.StatusBadRequest).Render("register", bind(c, d.Sessions, data), "layouts/main")
		}

		token, err := d.API.Login(ctx, form.Email, form.Password)
		if err != nil {
			// Account exists but auto-login failed; let them sign in manually.
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		d.Sessions.Establish(c, token)
		return c.Redirect("/colleges/dashboard", fiber.StatusSeeOther)
	}
}

// LogoutHandler clears the session.
func LogoutHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d.Sessions.Clear(c)
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}
