package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the portal reads from the environment. The portal
// keeps no database; the backend API is its only upstream.
type Config struct {
	// AppPort is the listen port, settable as PORT or APP_PORT.
	AppPort string

	// APIBaseURL is the backend REST API root, e.g. https://api.example.com.
	APIBaseURL string

	// CookieSecret encrypts the session cookie. Must be a 32-byte value
	// encoded as base64 for the encryptcookie middleware.
	CookieSecret string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads configuration from a .env file when present, then the
// environment. Missing values fall back to local-development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:      get("PORT", get("APP_PORT", "3000")),
		APIBaseURL:   get("API_BASE_URL", "http://localhost:8000"),
		CookieSecret: get("COOKIE_SECRET", ""),
	}
}
