// Package config loads server settings from the environment and owns the
// MongoDB connection.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries every setting the server reads. Only JWTSecret is strictly
// required; everything else has a usable default or is optional.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string

	// OTP store: empty RedisAddr keeps the in-process store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// SMTP for OTP delivery; unset means OTPs are logged instead.
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	MailFrom string

	LogLevel  string
	Env       string // dev|prod
	SentryDSN string
}

// Load reads the environment. It fails fast on a missing JWT secret rather
// than minting unverifiable tokens later.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB: %w", err)
		}
		redisDB = n
	}

	return &Config{
		Port:          getenv("PORT", "8080"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getenv("MONGO_DB", "iem_media_team"),
		JWTSecret:     secret,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		Env:           getenv("ENV", "dev"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
	}, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
