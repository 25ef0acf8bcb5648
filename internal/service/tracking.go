package service

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/model"
	"github.com/jmercer/compass/internal/workflow"
)

// trackingPrefix selects the backend route group for an entity type. The
// two groups expose identical shapes; everything below runs one code path.
func trackingPrefix(typ workflow.EntityType) string {
	if typ == workflow.EntityScholarship {
		return "/scholarship-tracking"
	}
	return "/college-tracking"
}

// applicationJSON represents a tracked application in backend responses.
// Subject fields (name, deadline, amounts) are joined in by the backend at
// read time; they are not owned by the application record.
type applicationJSON struct {
	ID              int64    `json:"id"`
	SubjectID       int64    `json:"subject_id"`
	SubjectName     string   `json:"subject_name"`
	Status          string   `json:"status"`
	Deadline        *string  `json:"deadline"`
	Notes           *string  `json:"notes"`
	ApplicationType *string  `json:"application_type"`
	AwardAmount     *float64 `json:"award_amount"`
	AmountMax       *float64 `json:"amount_max"`
	AmountExact     *float64 `json:"amount_exact"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func (a applicationJSON) toModel(typ workflow.EntityType) model.TrackedApplication {
	return model.TrackedApplication{
		ID:              a.ID,
		SubjectID:       a.SubjectID,
		Type:            typ,
		Status:          workflow.Status(a.Status),
		SubjectName:     a.SubjectName,
		Deadline:        parseDate(a.Deadline),
		Notes:           null.StringFromPtr(a.Notes),
		ApplicationType: null.StringFromPtr(a.ApplicationType),
		AwardAmount:     null.Float64FromPtr(a.AwardAmount),
		AmountMax:       null.Float64FromPtr(a.AmountMax),
		AmountExact:     null.Float64FromPtr(a.AmountExact),
		CreatedAt:       parseTimestamp(a.CreatedAt),
		UpdatedAt:       parseTimestamp(a.UpdatedAt),
	}
}

type dashboardJSON struct {
	Applications []applicationJSON `json:"applications"`
}

// TrackedApplications retrieves the full set of the user's applications for
// one entity type. The portal refetches this after every mutation instead of
// patching locally, so the rendered state is always a backend snapshot.
func (c *Client) TrackedApplications(ctx context.Context, typ workflow.EntityType, token string) ([]model.TrackedApplication, error) {
	var resp dashboardJSON
	if err := c.get(ctx, trackingPrefix(typ)+"/dashboard", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch %s dashboard: %w", typ, err)
	}
	out := make([]model.TrackedApplication, len(resp.Applications))
	for i, a := range resp.Applications {
		out[i] = a.toModel(typ)
	}
	return out, nil
}

type createApplicationRequest struct {
	SubjectID       int64   `json:"subject_id"`
	ApplicationType *string `json:"application_type,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// CreateApplication starts tracking a subject. The backend rejects a second
// record for the same subject; that surfaces as an ErrConflict-kind error.
func (c *Client) CreateApplication(ctx context.Context, typ workflow.EntityType, token string, subjectID int64, applicationType, notes null.String) (model.TrackedApplication, error) {
	req := createApplicationRequest{
		SubjectID:       subjectID,
		ApplicationType: applicationType.Ptr(),
		Notes:           notes.Ptr(),
	}
	var resp applicationJSON
	err := c.do(ctx, "POST", trackingPrefix(typ)+"/applications", token, nil, req, &resp)
	if err != nil {
		return model.TrackedApplication{}, fmt.Errorf("failed to track %s %d: %w", typ, subjectID, err)
	}
	return resp.toModel(typ), nil
}

// ApplicationUpdate carries the mutable fields of an application. Absent
// fields are left untouched by the backend.
type ApplicationUpdate struct {
	Status      *string  `json:"status,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	AwardAmount *float64 `json:"award_amount,omitempty"`
}

// UpdateApplication applies a partial update to one application.
func (c *Client) UpdateApplication(ctx context.Context, typ workflow.EntityType, token string, id int64, update ApplicationUpdate) (model.TrackedApplication, error) {
	var resp applicationJSON
	path := fmt.Sprintf("%s/applications/%d", trackingPrefix(typ), id)
	if err := c.do(ctx, "PUT", path, token, nil, update, &resp); err != nil {
		return model.TrackedApplication{}, fmt.Errorf("failed to update %s application %d: %w", typ, id, err)
	}
	return resp.toModel(typ), nil
}

// DeleteApplication hard-deletes an application. Irreversible; callers
// confirm with the user before getting here.
func (c *Client) DeleteApplication(ctx context.Context, typ workflow.EntityType, token string, id int64) error {
	path := fmt.Sprintf("%s/applications/%d", trackingPrefix(typ), id)
	if err := c.do(ctx, "DELETE", path, token, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete %s application %d: %w", typ, id, err)
	}
	return nil
}
