// Package session holds the one piece of client-side state the portal
// keeps: the backend bearer token. The token lives in an encrypted cookie;
// every lifecycle change (login, logout, expiry, 401) goes through Manager
// rather than ad hoc cookie reads scattered through handlers.
package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

const (
	cookieName = "compass_session"
	cookieTTL  = 7 * 24 * time.Hour

	// TokenKey is where RequireAuth stashes the token in request locals.
	TokenKey = "session_token"
)

// Manager owns the session cookie. Cookie values are encrypted by the
// encryptcookie middleware registered on the app, so the raw token never
// reaches the browser.
type Manager struct {
	loginPath string
}

// NewManager creates a session manager that redirects unauthenticated
// requests to loginPath.
func NewManager(loginPath string) *Manager {
	return &Manager{loginPath: loginPath}
}

// Establish stores a fresh token after a successful login.
func (m *Manager) Establish(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Expires:  time.Now().Add(cookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear drops the session. Used on logout and whenever a token turns out to
// be unusable (local expiry or a backend 401).
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Token returns the stored token, or false when there is no usable session.
// A locally-expired token counts as absent.
func (m *Manager) Token(c *fiber.Ctx) (string, bool) {
	token := c.Cookies(cookieName)
	if token == "" {
		return "", false
	}
	if Expired(token, time.Now()) {
		return "", false
	}
	return token, true
}

// RequireAuth gates a route group on a usable session. Missing or expired
// sessions are cleared and redirected to the login page; otherwise the
// token is placed in locals under TokenKey for handlers.
func (m *Manager) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := m.Token(c)
		if !ok {
			m.Clear(c)
			return c.Redirect(m.loginPath, fiber.StatusSeeOther)
		}
		c.Locals(TokenKey, token)
		return c.Next()
	}
}

// Token retrieves the token RequireAuth stored for this request.
func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(TokenKey).(string)
	return token
}

// Expired peeks at a JWT's exp claim without verifying the signature; the
// backend is the signing authority, the portal only wants to skip a
// guaranteed 401 round-trip. Opaque or claimless tokens are never treated
// as locally expired.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	if _, ok := claims["exp"]; !ok {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), false)
}
