package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvAddr  = "CORRUCALC_ADDR"
	EnvRate  = "CORRUCALC_RATE"
	EnvBurst = "CORRUCALC_BURST"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr  string  // Listen address
	Rate  float64 // Requests per second allowed per client IP
	Burst int     // Requests a client may burst above Rate
}

func DefaultConfig() Config {
	return Config{
		Addr:  ":8080",
		Rate:  5,
		Burst: 10,
	}
}

// LoadConfig reads envFile into the process environment, if it exists, and
// applies the CORRUCALC_* variables on top of DefaultConfig. Variables
// already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	cfg := DefaultConfig()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvRate); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 {
			return cfg, fmt.Errorf("invalid %s %q: must be a positive number", EnvRate, v)
		}
		cfg.Rate = r
	}
	if v := os.Getenv(EnvBurst); v != "" {
		b, err := strconv.Atoi(v)
		if err != nil || b < 1 {
			return cfg, fmt.Errorf("invalid %s %q: must be a positive integer", EnvBurst, v)
		}
		cfg.Burst = b
	}
	return cfg, nil
}
