package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/model"
	"github.com/jmercer/compass/internal/service"
)

const searchPageSize = 20

// searchKey identifies the browser session for latest-wins search
// coordination. Signed-in users key on their token; everyone else on
// client address.
func searchKey(c *fiber.Ctx, d Deps) string {
	if token, ok := d.Sessions.Token(c); ok {
		return token
	}
	return c.IP()
}

// parseSearchQuery reads the search/filter query parameters.
func parseSearchQuery(c *fiber.Ctx) model.InstitutionSearch {
	params := model.InstitutionSearch{
		Query:    strings.TrimSpace(c.Query("q")),
		State:    strings.ToUpper(strings.TrimSpace(c.Query("state"))),
		Page:     c.QueryInt("page", 1),
		PageSize: searchPageSize,
	}
	if raw := c.Query("max_tuition"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			params.MaxTuition = null.Float64From(v)
		}
	}
	return params
}

// InstitutionsHandler renders the institution search page. Keystroke
// requests arrive debounced from the browser and carry the HX-Request
// header; those get just the results partial, routed through the
// latest-wins searcher so a stale response can never replace a newer list.
func InstitutionsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()
		params := parseSearchQuery(c)

		page, err := d.Searcher.Search(ctx, searchKey(c, d), params)
		if errors.Is(err, service.ErrSuperseded) {
			// A newer query is in flight; its response will render.
			return c.SendStatus(fiber.StatusNoContent)
		}

		data := fiber.Map{
			"Query":   params.Query,
			"State":   params.State,
			"Results": page.Items,
			"Total":   page.Total,
			"Page":    page.Page,
		}
		if err != nil {
			data["Error"] = friendlyMessage(err)
			data["Results"] = nil
		}

		if c.Get("HX-Request") == "true" {
			return c.Render("partials/institution_results", data)
		}
		return c.Render("institutions", bind(c, d.Sessions, data), "layouts/main")
	}
}

// InstitutionDetailHandler renders one institution's page.
func InstitutionDetailHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusNotFound).Render("not_found", bind(c, d.Sessions, nil), "layouts/main")
		}

		inst, err := d.API.InstitutionByID(ctx, id)
		if err != nil {
			if service.IsKind(err, service.ErrNotFound) {
				return c.Status(fiber.StatusNotFound).Render("not_found", bind(c, d.Sessions, nil), "layouts/main")
			}
			return handleAPIError(c, d, err, "institutions", nil)
		}

		return c.Render("institution_detail", bind(c, d.Sessions, fiber.Map{
			"Institution":      inst,
			"ApplicationTypes": model.ApplicationTypes,
			"TrackError":       c.Query("track_error"),
		}), "layouts/main")
	}
}

// InstitutionsByStateHandler lists institutions for a two-letter state code.
func InstitutionsByStateHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := context.Background()

		code := strings.ToUpper(c.Params("code"))
		page, err := d.API.InstitutionsByState(ctx, code, c.QueryInt("page", 1), searchPageSize)
		if err != nil {
			return handleAPIError(c, d, err, "institutions", fiber.Map{"State": code})
		}

		return c.Render("institutions", bind(c, d.Sessions, fiber.Map{
			"State":   code,
			"Results": page.Items,
			"Total":   page.Total,
			"Page":    page.Page,
		}), "layouts/main")
	}
}
