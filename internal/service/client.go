// Package service implements the portal's only stateful collaborator: the
// backend REST API. The backend is the source of truth for every record; the
// client here is transport glue plus error classification.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// Client talks to the backend API. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend API client rooted at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// ErrorKind classifies a failed backend call for the UI layer.
type ErrorKind string

const (
	ErrAuth       ErrorKind = "auth"       // missing/expired token
	ErrValidation ErrorKind = "validation" // bad input, per-field details
	ErrConflict   ErrorKind = "conflict"   // e.g. subject already tracked
	ErrNotFound   ErrorKind = "not_found"
	ErrServer     ErrorKind = "server"
	ErrTransport  ErrorKind = "transport" // never reached the backend
)

// APIError is a classified backend failure. Fields carries per-field
// validation messages when the backend returned structured detail.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("backend unreachable: %s", e.Message)
	}
	return fmt.Sprintf("backend %d (%s): %s", e.StatusCode, e.Kind, e.Message)
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// errorBody matches the backend's error envelope. Detail is either a plain
// string or a list of {loc, msg} objects for field-level validation errors.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldDetail struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// classify maps an HTTP failure to the UI error taxonomy.
func classify(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Message: http.StatusText(status)}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var msg string
		if json.Unmarshal(envelope.Detail, &msg) == nil {
			apiErr.Message = msg
		} else {
			var details []fieldDetail
			if json.Unmarshal(envelope.Detail, &details) == nil && len(details) > 0 {
				apiErr.Fields = make(map[string]string, len(details))
				for _, d := range details {
					apiErr.Fields[fieldName(d.Loc)] = d.Msg
				}
				apiErr.Message = "some fields need attention"
			}
		}
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Kind = ErrAuth
	case status == http.StatusNotFound:
		apiErr.Kind = ErrNotFound
	case status == http.StatusConflict:
		apiErr.Kind = ErrConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		// The backend reports duplicate tracking as a 400 with a prose
		// detail rather than a 409.
		if strings.Contains(strings.ToLower(apiErr.Message), "already") {
			apiErr.Kind = ErrConflict
		} else {
			apiErr.Kind = ErrValidation
		}
	case status >= 500:
		apiErr.Kind = ErrServer
	default:
		apiErr.Kind = ErrServer
	}
	return apiErr
}

// fieldName extracts the field segment from a detail location like
// ["body", "email"]; the last string segment wins.
func fieldName(loc []json.RawMessage) string {
	name := "request"
	for _, seg := range loc {
		var s string
		if json.Unmarshal(seg, &s) == nil && s != "body" && s != "query" && s != "path" {
			name = s
		}
	}
	return name
}

// do performs one backend call. GET requests retry with exponential backoff
// on transport errors, 429 and 5xx; mutations are sent exactly once. A nil
// out discards the response body.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", method, path, err)
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts = maxRetries
	}

	var lastErr *APIError
	backoff := initialBackoff

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", uuid.NewString())
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = &APIError{Kind: ErrTransport, Message: err.Error()}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = &APIError{Kind: ErrTransport, Message: err.Error()}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = classify(resp.StatusCode, respBody)
			continue
		}
		if resp.StatusCode >= 400 {
			return classify(resp.StatusCode, respBody)
		}

		if out != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("failed to parse %s %s response: %w", method, path, err)
			}
		}
		return nil
	}

	return lastErr
}

func (c *Client) get(ctx context.Context, path, token string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, token, query, nil, out)
}
