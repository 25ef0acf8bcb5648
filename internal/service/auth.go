package service

import (
	"context"
	"fmt"

	"github.com/jmercer/compass/internal/model"
)

// userJSON represents an account in backend responses.
type userJSON struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

func (u userJSON) toModel() model.User {
	return model.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: parseTimestamp(u.CreatedAt),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, "POST", "/auth/login-json", "", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	return resp.AccessToken, nil
}

// Register creates an account. The caller still logs in afterwards; the
// backend does not return a token on registration.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (model.User, error) {
	var resp userJSON
	err := c.do(ctx, "POST", "/auth/register", "", nil, registerRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, &resp)
	if err != nil {
		return model.User{}, fmt.Errorf("registration failed: %w", err)
	}
	return resp.toModel(), nil
}

// Me fetches the account behind a token; an ErrAuth-kind error means the
// token is no longer usable.
func (c *Client) Me(ctx context.Context, token string) (model.User, error) {
	var resp userJSON
	if err := c.get(ctx, "/auth/me", token, nil, &resp); err != nil {
		return model.User{}, fmt.Errorf("failed to fetch account: %w", err)
	}
	return resp.toModel(), nil
}
