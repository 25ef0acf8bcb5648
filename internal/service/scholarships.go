package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/model"
)

// scholarshipJSON represents a scholarship in backend responses.
type scholarshipJSON struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Organization string   `json:"organization"`
	Description  *string  `json:"description"`
	AmountMin    *float64 `json:"amount_min"`
	AmountMax    *float64 `json:"amount_max"`
	AmountExact  *float64 `json:"amount_exact"`
	Deadline     *string  `json:"deadline"`
	Website      *string  `json:"website"`
	Renewable    bool     `json:"renewable"`
}

func (s scholarshipJSON) toModel() model.Scholarship {
	return model.Scholarship{
		ID:           s.ID,
		Name:         s.Name,
		Organization: s.Organization,
		Description:  null.StringFromPtr(s.Description),
		AmountMin:    null.Float64FromPtr(s.AmountMin),
		AmountMax:    null.Float64FromPtr(s.AmountMax),
		AmountExact:  null.Float64FromPtr(s.AmountExact),
		Deadline:     parseDate(s.Deadline),
		Website:      null.StringFromPtr(s.Website),
		Renewable:    s.Renewable,
	}
}

type scholarshipPageJSON struct {
	Items    []scholarshipJSON `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Scholarships retrieves one page of the scholarship listing.
func (c *Client) Scholarships(ctx context.Context, page, pageSize int) (model.ScholarshipPage, error) {
	q := make(url.Values)
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	var resp scholarshipPageJSON
	if err := c.get(ctx, "/scholarships/", "", q, &resp); err != nil {
		return model.ScholarshipPage{}, fmt.Errorf("failed to fetch scholarships: %w", err)
	}

	out := model.ScholarshipPage{
		Items:    make([]model.Scholarship, len(resp.Items)),
		Total:    resp.Total,
		Page:     resp.Page,
		PageSize: resp.PageSize,
	}
	for i, item := range resp.Items {
		out.Items[i] = item.toModel()
	}
	return out, nil
}

// ScholarshipByID retrieves one scholarship's detail record.
func (c *Client) ScholarshipByID(ctx context.Context, id int64) (model.Scholarship, error) {
	var resp scholarshipJSON
	if err := c.get(ctx, fmt.Sprintf("/scholarships/%d", id), "", nil, &resp); err != nil {
		return model.Scholarship{}, fmt.Errorf("failed to fetch scholarship %d: %w", id, err)
	}
	return resp.toModel(), nil
}
