package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/model"
)

// profileJSON represents the academic profile in backend responses and in
// PUT requests (the shape is symmetric).
type profileJSON struct {
	FullName       string   `json:"full_name"`
	GraduationYear *int     `json:"graduation_year"`
	GPA            *float64 `json:"gpa"`
	SATScore       *int     `json:"sat_score"`
	ACTScore       *int     `json:"act_score"`
	State          *string  `json:"state"`
	IntendedMajor  *string  `json:"intended_major"`
	HeadshotURL    *string  `json:"headshot_url"`
	ResumeURL      *string  `json:"resume_url"`
}

func (p profileJSON) toModel() model.Profile {
	return model.Profile{
		FullName:       p.FullName,
		GraduationYear: null.IntFromPtr(p.GraduationYear),
		GPA:            null.Float64FromPtr(p.GPA),
		SATScore:       null.IntFromPtr(p.SATScore),
		ACTScore:       null.IntFromPtr(p.ACTScore),
		State:          null.StringFromPtr(p.State),
		IntendedMajor:  null.StringFromPtr(p.IntendedMajor),
		HeadshotURL:    null.StringFromPtr(p.HeadshotURL),
		ResumeURL:      null.StringFromPtr(p.ResumeURL),
	}
}

func profileFromModel(p model.Profile) profileJSON {
	return profileJSON{
		FullName:       p.FullName,
		GraduationYear: p.GraduationYear.Ptr(),
		GPA:            p.GPA.Ptr(),
		SATScore:       p.SATScore.Ptr(),
		ACTScore:       p.ACTScore.Ptr(),
		State:          p.State.Ptr(),
		IntendedMajor:  p.IntendedMajor.Ptr(),
	}
}

type settingsJSON struct {
	EmailDeadlineReminders bool `json:"email_deadline_reminders"`
	EmailProductUpdates    bool `json:"email_product_updates"`
	ProfileSearchable      bool `json:"profile_searchable"`
}

// Profile retrieves the signed-in user's academic profile.
func (c *Client) Profile(ctx context.Context, token string) (model.Profile, error) {
	var resp profileJSON
	if err := c.get(ctx, "/profiles/me", token, nil, &resp); err != nil {
		return model.Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return resp.toModel(), nil
}

// UpdateProfile replaces the profile. Absent optional fields clear the
// corresponding backend values, matching PUT semantics.
func (c *Client) UpdateProfile(ctx context.Context, token string, p model.Profile) (model.Profile, error) {
	var resp profileJSON
	if err := c.do(ctx, "PUT", "/profiles/me", token, nil, profileFromModel(p), &resp); err != nil {
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return resp.toModel(), nil
}

// Settings retrieves the user's notification and privacy preferences.
func (c *Client) Settings(ctx context.Context, token string) (model.Settings, error) {
	var resp settingsJSON
	if err := c.get(ctx, "/profiles/me/settings", token, nil, &resp); err != nil {
		return model.Settings{}, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return model.Settings(resp), nil
}

// UpdateSettings patches the user's preferences.
func (c *Client) UpdateSettings(ctx context.Context, token string, s model.Settings) (model.Settings, error) {
	var resp settingsJSON
	if err := c.do(ctx, "PATCH", "/profiles/me/settings", token, nil, settingsJSON(s), &resp); err != nil {
		return model.Settings{}, fmt.Errorf("failed to update settings: %w", err)
	}
	return model.Settings(resp), nil
}

// UploadHeadshot forwards a headshot image to the backend.
func (c *Client) UploadHeadshot(ctx context.Context, token, filename string, file io.Reader) (model.Profile, error) {
	return c.uploadProfileFile(ctx, token, "/profiles/me/upload-headshot", filename, file)
}

// UploadResume forwards a resume to the backend, which parses it and folds
// extracted fields into the profile. Parsing happens entirely server-side.
func (c *Client) UploadResume(ctx context.Context, token, filename string, file io.Reader) (model.Profile, error) {
	return c.uploadProfileFile(ctx, token, "/profiles/me/upload-resume-and-update", filename, file)
}

// uploadProfileFile sends one file as multipart form data. Uploads are
// mutations and are never retried.
func (c *Client) uploadProfileFile(ctx context.Context, token, path, filename string, file io.Reader) (model.Profile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return model.Profile{}, fmt.Errorf("failed to read upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return model.Profile{}, fmt.Errorf("failed to finalize upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return model.Profile{}, ctx.Err()
		}
		return model.Profile{}, &APIError{Kind: ErrTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Profile{}, &APIError{Kind: ErrTransport, Message: err.Error()}
	}
	if resp.StatusCode >= 400 {
		return model.Profile{}, classify(resp.StatusCode, body)
	}

	var out profileJSON
	if err := json.Unmarshal(body, &out); err != nil {
		return model.Profile{}, fmt.Errorf("failed to parse upload response: %w", err)
	}
	return out.toModel(), nil
}
