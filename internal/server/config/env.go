package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is folded in first; already-set
// variables win over the file's.
//
// Recognized variables:
//
//	ADDRESS         bind address
//	DATABASE_DSN    PostgreSQL DSN
//	SECRET_KEY      JWT HMAC secret
//	TOKEN_VALIDITY  token lifetime, e.g. "24h"
//	S3_ROOT_USER / S3_ROOT_PASSWORD / S3_BUCKET / S3_REGION / S3_BASE_ENDPOINT
func parseEnv(cfg *Config) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	if v := os.Getenv("ADDRESS"); v != "" {
		cfg.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		cfg.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		cfg.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		cfg.S3BaseEndpoint = v
	}
}
