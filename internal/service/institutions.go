package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/model"
)

// institutionJSON represents an institution in backend responses.
type institutionJSON struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	Website           *string  `json:"website"`
	TuitionInState    *float64 `json:"tuition_in_state"`
	TuitionOutOfState *float64 `json:"tuition_out_of_state"`
	AcceptanceRate    *float64 `json:"acceptance_rate"`
	EnrollmentTotal   *int64   `json:"enrollment_total"`
	ApplicationFee    *float64 `json:"application_fee"`
	Deadline          *string  `json:"application_deadline"`
	ImageURL          *string  `json:"image_url"`
}

func (in institutionJSON) toModel() model.Institution {
	return model.Institution{
		ID:                in.ID,
		Name:              in.Name,
		City:              in.City,
		State:             in.State,
		Website:           null.StringFromPtr(in.Website),
		TuitionInState:    null.Float64FromPtr(in.TuitionInState),
		TuitionOutOfState: null.Float64FromPtr(in.TuitionOutOfState),
		AcceptanceRate:    null.Float64FromPtr(in.AcceptanceRate),
		EnrollmentTotal:   null.Int64FromPtr(in.EnrollmentTotal),
		ApplicationFee:    null.Float64FromPtr(in.ApplicationFee),
		Deadline:          parseDate(in.Deadline),
		ImageURL:          null.StringFromPtr(in.ImageURL),
	}
}

// institutionPageJSON represents a paginated institution listing.
type institutionPageJSON struct {
	Items    []institutionJSON `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

func (p institutionPageJSON) toModel() model.InstitutionPage {
	page := model.InstitutionPage{
		Items:    make([]model.Institution, len(p.Items)),
		Total:    p.Total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	for i, item := range p.Items {
		page.Items[i] = item.toModel()
	}
	return page
}

// FeaturedInstitutions retrieves the home-page institution strip.
func (c *Client) FeaturedInstitutions(ctx context.Context) ([]model.Institution, error) {
	var resp []institutionJSON
	if err := c.get(ctx, "/institutions/featured", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch featured institutions: %w", err)
	}
	out := make([]model.Institution, len(resp))
	for i, item := range resp {
		out[i] = item.toModel()
	}
	return out, nil
}

// SearchInstitutions runs a paginated institution search. Zero-valued
// filters are omitted from the query.
func (c *Client) SearchInstitutions(ctx context.Context, params model.InstitutionSearch) (model.InstitutionPage, error) {
	q := make(url.Values)
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if params.State != "" {
		q.Set("state", params.State)
	}
	if params.MaxTuition.Valid {
		q.Set("max_tuition", strconv.FormatFloat(params.MaxTuition.Float64, 'f', -1, 64))
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(params.PageSize))
	}

	var resp institutionPageJSON
	if err := c.get(ctx, "/institutions/search", "", q, &resp); err != nil {
		return model.InstitutionPage{}, fmt.Errorf("institution search failed: %w", err)
	}
	return resp.toModel(), nil
}

// InstitutionByID retrieves one institution's detail record.
func (c *Client) InstitutionByID(ctx context.Context, id int64) (model.Institution, error) {
	var resp institutionJSON
	if err := c.get(ctx, fmt.Sprintf("/institutions/%d", id), "", nil, &resp); err != nil {
		return model.Institution{}, fmt.Errorf("failed to fetch institution %d: %w", id, err)
	}
	return resp.toModel(), nil
}

// InstitutionsByState lists institutions in a state by its two-letter code.
func (c *Client) InstitutionsByState(ctx context.Context, code string, page, pageSize int) (model.InstitutionPage, error) {
	q := make(url.Values)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var resp institutionPageJSON
	if err := c.get(ctx, "/institutions/by-state/"+url.PathEscape(code), "", q, &resp); err != nil {
		return model.InstitutionPage{}, fmt.Errorf("failed to fetch institutions for state %s: %w", code, err)
	}
	return resp.toModel(), nil
}
