package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotEnvFile is loaded into the process environment when present.
// Variables already set in the environment win.
var dotEnvFile = ".env"

// envConfig mirrors Config with the variable names used by deployments.
// PORT is kept for compatibility with platforms that only hand out a port.
type envConfig struct {
	Port                  string        `env:"PORT"`
	HTTPAddr              string        `env:"HTTP_ADDR"`
	GRPCAddr              string        `env:"GRPC_ADDR"`
	DatabaseDSN           string        `env:"DATABASE_URL"`
	SecretKey             string        `env:"JWT_SECRET"`
	TokenValidityDuration time.Duration `env:"TOKEN_TTL"`
	BcryptCost            int           `env:"BCRYPT_COST"`
	StoreTimeout          time.Duration `env:"STORE_TIMEOUT"`
	CORSAllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel              string        `env:"LOG_LEVEL"`
}

func loadDotEnv() {
	_ = godotenv.Load(dotEnvFile)
}

// parseEnv overlays every variable that is set onto config.
func parseEnv(config *Config) error {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.Port != "" {
		config.HTTPAddr = ":" + e.Port
	}
	if e.HTTPAddr != "" {
		config.HTTPAddr = e.HTTPAddr
	}
	if e.GRPCAddr != "" {
		config.GRPCAddr = e.GRPCAddr
	}
	if e.DatabaseDSN != "" {
		config.DatabaseDSN = e.DatabaseDSN
	}
	if e.SecretKey != "" {
		config.SecretKey = e.SecretKey
	}
	if e.TokenValidityDuration != 0 {
		config.TokenValidityDuration = e.TokenValidityDuration
	}
	if e.BcryptCost != 0 {
		config.BcryptCost = e.BcryptCost
	}
	if e.StoreTimeout != 0 {
		config.StoreTimeout = e.StoreTimeout
	}
	if len(e.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = e.CORSAllowedOrigins
	}
	if e.LogLevel != "" {
		config.LogLevel = e.LogLevel
	}
	return nil
}
