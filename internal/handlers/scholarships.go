package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jmercer/compass/internal/service"
)

// ScholarshipsHandler renders the paginated scholarship listing.
func ScholarshipsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		page, err := d.API.Scholarships(ctx, c.QueryInt("page", 1), searchPageSize)
		if err != nil {
			return handleAPIError(c, d, err, "scholarships", nil)
		}

		return c.Render("scholarships", bind(c, d.Sessions, fiber.Map{
			"Results": page.Items,
			"Total":   page.Total,
			"Page":    page.Page,
		}), "layouts/main")
	}
}

// ScholarshipDetailHandler renders one scholarship's page.
func ScholarshipDetailHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusNotFound).Render("not_found", bind(c, d.Sessions, nil), "layouts/main")
		}

		sch, err := d.API.ScholarshipByID(ctx, id)
		if err != nil {
			if service.IsKind(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).Render("not_found", bind(c, d.Sessions, nil), "layouts/main")
			}
			return handleAPIError(c, d, err, "scholarships", nil)
		}

		return c.Render("scholarship_detail", bind(c, d.Sessions, fiber.Map{
			"Scholarship": sch,
			"TrackError":  c.Query("track_error"),
		}), "layouts/main")
	}
}
