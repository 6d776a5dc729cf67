package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

type ServerConfig struct {
	Addr         string
	TemplateGlob string
}

// LoadDotEnv pulls a local .env into the process environment if one
// exists; missing files are fine.
func LoadDotEnv() {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("LIBRARYHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("LIBRARYHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "libraryhub"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("LIBRARYHUB_JWT_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			duration = time.Duration(hours) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: duration,
	}
}

func LoadServerConfig() ServerConfig {
	addr := os.Getenv("LIBRARYHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	glob := os.Getenv("LIBRARYHUB_TEMPLATES")
	if glob == "" {
		glob = "web/templates/*.html"
	}
	return ServerConfig{Addr: addr, TemplateGlob: glob}
}
