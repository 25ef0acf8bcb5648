package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/jmercer/compass/internal/workflow"
)

func TestTrackedApplications_routesPerType(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"applications":[
			{"id":7,"subject_id":12,"subject_name":"State U","status":"submitted",
			 "deadline":"2026-04-01","notes":"essay done",
			 "created_at":"2026-01-01T00:00:00Z","updated_at":"2026-02-01T00:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	apps, err := c.TrackedApplications(context.Background(), workflow.EntityCollege, "tok")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, int64(7), apps[0].ID)
	assert.Equal(t, workflow.EntityCollege, apps[0].Type)
	assert.Equal(t, workflow.StatusSubmitted, apps[0].Status)
	assert.True(t, apps[0].Deadline.Valid)
	assert.Equal(t, "essay done", apps[0].Notes.String)

	_, err = c.TrackedApplications(context.Background(), workflow.EntityScholarship, "tok")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/college-tracking/dashboard",
		"/scholarship-tracking/dashboard",
	}, paths)
}

func TestCreateApplication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scholarship-tracking/applications", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(42), body["subject_id"])
		_, hasAppType := body["application_type"]
		assert.False(t, hasAppType, "absent optionals must not be sent")

		w.Write([]byte(`{"id":1,"subject_id":42,"subject_name":"STEM Grant","status":"interested",
			"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	app, err := NewClient(srv.URL).CreateApplication(
		context.Background(), workflow.EntityScholarship, "tok", 42, null.String{}, null.String{})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusInterested, app.Status)
}

func TestCreateApplication_duplicateIsConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"You are already tracking this scholarship"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateApplication(
		context.Background(), workflow.EntityScholarship, "tok", 42, null.String{}, null.String{})
	require.Error(t, err)
	assert.True(t, IsKind(err, ErrConflict), "duplicate tracking must surface as a conflict, got %v", err)
}

func TestUpdateApplication_sendsPartialBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/college-tracking/applications/7", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "submitted", body["status"])
		_, hasNotes := body["notes"]
		assert.False(t, hasNotes)

		w.Write([]byte(`{"id":7,"subject_id":12,"subject_name":"State U","status":"submitted",
			"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-02-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	status := "submitted"
	app, err := NewClient(srv.URL).UpdateApplication(
		context.Background(), workflow.EntityCollege, "tok", 7, ApplicationUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusSubmitted, app.Status)
}

func TestDeleteApplication(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/scholarship-tracking/applications/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).DeleteApplication(context.Background(), workflow.EntityScholarship, "tok", 9)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestParseDate_absentStaysAbsent(t *testing.T) {
	assert.False(t, parseDate(nil).Valid)
	empty := ""
	assert.False(t, parseDate(&empty).Valid)
	junk := "soon"
	assert.False(t, parseDate(&junk).Valid)

	bare := "2026-04-01"
	parsed := parseDate(&bare)
	require.True(t, parsed.Valid)
	assert.Equal(t, 2026, parsed.Time.Year())
}
