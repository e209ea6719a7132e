package asker

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

type Config struct {
	APIBaseURL  string
	AskerID     string
	Interval    time.Duration
	HTTPTimeout time.Duration
	FreeFormPct int
	Seed        int64
}

func DefaultConfig() Config {
	return Config{
		APIBaseURL:  "http://localhost:8000",
		AskerID:     "demo-asker",
		Interval:    5 * time.Second,
		HTTPTimeout: 20 * time.Second,
		FreeFormPct: 20,
		Seed:        time.Now().UTC().UnixNano(),
	}
}

func LoadConfigFromEnv(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	cfg := DefaultConfig()
	if err := applyString(lookup, "SPENDQL_DEMO_API_URL", &cfg.APIBaseURL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SPENDQL_DEMO_ASKER_ID", &cfg.AskerID); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SPENDQL_DEMO_INTERVAL", &cfg.Interval); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SPENDQL_DEMO_HTTP_TIMEOUT", &cfg.HTTPTimeout); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SPENDQL_DEMO_FREE_FORM_PCT", &cfg.FreeFormPct); err != nil {
		return Config{}, err
	}
	if err := applyInt64(lookup, "SPENDQL_DEMO_SEED", &cfg.Seed); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return Config{}, fmt.Errorf("SPENDQL_DEMO_API_URL is required")
	}
	if strings.TrimSpace(cfg.AskerID) == "" {
		return Config{}, fmt.Errorf("SPENDQL_DEMO_ASKER_ID is required")
	}
	if cfg.Interval <= 0 {
		return Config{}, fmt.Errorf("SPENDQL_DEMO_INTERVAL must be > 0")
	}
	if cfg.HTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("SPENDQL_DEMO_HTTP_TIMEOUT must be > 0")
	}
	if cfg.FreeFormPct < 0 || cfg.FreeFormPct > 100 {
		return Config{}, fmt.Errorf("SPENDQL_DEMO_FREE_FORM_PCT must be between 0 and 100")
	}

	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	cfg.AskerID = strings.TrimSpace(cfg.AskerID)
	return cfg, nil
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func applyInt64(lookup LookupFunc, key string, dst *int64) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}
