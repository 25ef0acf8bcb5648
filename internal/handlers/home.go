package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
)

// HomeHandler renders the landing page with the featured institution strip.
// A backend failure here degrades to an empty strip rather than an error
// page; the rest of the page still works.
func HomeHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		featured, err := d.API.FeaturedInstitutions(ctx)
		if err != nil {
			log.Printf("Error loading featured institutions: %v", err)
			featured = nil
		}

		return c.Render("home", bind(c, d.Sessions, fiber.Map{
			"Featured": featured,
		}), "layouts/main")
	}
}
