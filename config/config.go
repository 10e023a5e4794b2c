package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"ventas-backoffice/pricing"
)

// Config holds the runtime configuration resolved from the environment.
type Config struct {
	Port    string
	TaxRate float64
}

// LoadEnv loads the .env file in development (ignores a missing file).
// In production, variables should be set directly. Uses Overload so .env
// values override system environment variables.
func LoadEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(".env"); err != nil {
		log.Printf("Warning: .env file not found, using system environment variables")
	} else {
		log.Printf("Loaded environment variables from .env (overriding system variables)")
	}
}

// Load resolves the runtime configuration from the environment.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	// Remove leading colon if present
	if port[0] == ':' {
		port = port[1:]
	}

	taxRate := pricing.DefaultTaxRate
	if raw := os.Getenv("TAX_RATE"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			log.Printf("⚠️ Config: Invalid TAX_RATE %q, using default %v", raw, pricing.DefaultTaxRate)
		} else {
			taxRate = parsed
		}
	}

	return &Config{Port: port, TaxRate: taxRate}
}
