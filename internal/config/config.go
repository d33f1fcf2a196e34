package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string // sqlite|postgres|memory
	DBDSN    string

	// AuthSecret signs the HS256 bearer tokens. Always supplied via
	// environment; the default exists for local development only.
	AuthSecret string

	// DevMode widens CORS to the local frontends and is never set in prod.
	DevMode bool

	CORSOrigins []string

	// Bootstrap admin account, created on first start when the user table
	// is empty.
	AdminUser     string
	AdminPassword string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         os.Getenv("DB_DSN"),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		DevMode:       envBool("DEV_MODE", true),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000"),
		AdminUser:     envOr("ADMIN_USER", "superadmin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
