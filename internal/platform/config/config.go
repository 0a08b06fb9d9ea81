package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Bill number allocation: prefix printed on every bill plus the value the
	// sequence starts from when no bill has ever been issued.
	BillNoPrefix      string
	BillSequenceStart int64

	// Rate limit applied to the auth endpoints, limiter format (e.g. "10-M").
	AuthRateLimit string

	PosthogAPIKey   string
	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "institute-portal")
	viper.SetDefault("BILL_NO_PREFIX", "BILL-")
	viper.SetDefault("BILL_SEQ_START", int64(5001))
	viper.SetDefault("AUTH_RATE_LIMIT", "10-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRY_DURATION (%q). Defaulting to 1h.\n", viper.GetString("JWT_EXPIRY_DURATION"))
		jwtExpiry = time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.BillNoPrefix = viper.GetString("BILL_NO_PREFIX")
	cfg.BillSequenceStart = viper.GetInt64("BILL_SEQ_START")
	if cfg.BillSequenceStart < 1 {
		log.Printf("Warning: BILL_SEQ_START must be positive, got %d. Defaulting to 5001.\n", cfg.BillSequenceStart)
		cfg.BillSequenceStart = 5001
	}

	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}
