package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SAHAYAK_"

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped and variables already set are kept.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with SAHAYAK_* environment variables:
// DEBUG, SERVER_HOST, SERVER_PORT, CATALOG_PATH, DATABASE_PATH,
// SEARCH_RADIUS_KM and SYNTH_SEED.
func ApplyEnv(cfg *Config) error {
	if v, ok := lookupEnv("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("DEBUG", err)
		}
		cfg.Debug = b
	}
	if v, ok := lookupEnv("SERVER_HOST"); ok {
		cfg.Server.Host = v
	}
	if v, ok := lookupEnv("SERVER_PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("SERVER_PORT", err)
		}
		cfg.Server.Port = n
	}
	if v, ok := lookupEnv("CATALOG_PATH"); ok {
		cfg.Catalog.Path = v
	}
	if v, ok := lookupEnv("DATABASE_PATH"); ok {
		cfg.Catalog.DatabasePath = v
	}
	if v, ok := lookupEnv("SEARCH_RADIUS_KM"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError("SEARCH_RADIUS_KM", err)
		}
		cfg.Search.RadiusKm = f
	}
	if v, ok := lookupEnv("SYNTH_SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return envError("SYNTH_SEED", err)
		}
		cfg.Synth.Seed = &n
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	return v, ok && v != ""
}

func envError(key string, err error) error {
	return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
}
