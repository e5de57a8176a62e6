package config

import (
	"log"
	"os"
	"time"

	"trekora/internal/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DatabaseURL string

	JWTSecret []byte
	JWTIssuer string

	SessionTTL           time.Duration
	VerificationTokenTTL time.Duration
	ResendCooldown       time.Duration

	ResendAPIKey string
	EmailFrom    string
	AppBaseURL   string

	GoogleClientID string
}

// Load reads the environment once at startup. Everything downstream takes the
// resulting struct; nothing else touches os.Getenv.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %s", err)
	}

	cfg := Config{
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		JWTSecret:            []byte(os.Getenv("JWT_SECRET")),
		JWTIssuer:            getEnv("JWT_ISSUER", "trekora"),
		SessionTTL:           utils.ParseDurationString(os.Getenv("SESSION_TTL"), 7*24*time.Hour),
		VerificationTokenTTL: utils.ParseDurationString(os.Getenv("VERIFICATION_TOKEN_TTL"), 24*time.Hour),
		ResendCooldown:       utils.ParseDurationString(os.Getenv("RESEND_COOLDOWN"), 60*time.Second),
		ResendAPIKey:         os.Getenv("RESEND_API_KEY"),
		EmailFrom:            os.Getenv("EMAIL_FROM"),
		AppBaseURL:           os.Getenv("APP_BASE_URL"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
	}
	return cfg
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
