package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// JWT verification of the tokens issued by the external identity service.
	JWTSecret string
	JWTIssuer string

	// CASMaxAttempts bounds the ledger engine's conditional-write retries.
	CASMaxAttempts int

	// RedeemRateLimit is a ulule/limiter formatted rate, e.g. "10-M".
	RedeemRateLimit string

	// CORSAllowOrigins is the comma-separated list of allowed origins.
	CORSAllowOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "docpoints-identity")
	viper.SetDefault("CAS_MAX_ATTEMPTS", 5)
	viper.SetDefault("REDEEM_RATE_LIMIT", "30-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
		// Consider returning an error depending on requirements
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CASMaxAttempts = viper.GetInt("CAS_MAX_ATTEMPTS")
	if cfg.CASMaxAttempts <= 0 {
		cfg.CASMaxAttempts = 5
		log.Printf("Warning: Invalid value for CAS_MAX_ATTEMPTS. Defaulting to %d.\n", cfg.CASMaxAttempts)
	}

	cfg.RedeemRateLimit = viper.GetString("REDEEM_RATE_LIMIT")

	corsOrigins := viper.GetString("CORS_ALLOW_ORIGINS")
	for _, origin := range strings.Split(corsOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, trimmed)
		}
	}

	return cfg, nil
}
