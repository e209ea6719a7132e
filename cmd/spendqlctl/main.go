package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spendql/spendql/internal/cli/spendqlctl"
)

func main() {
	defaults := spendqlctl.Options{
		BaseURL: envOr("SPENDQL_API_URL", "http://localhost:8000"),
		Timeout: parseDurationWithDefault(os.Getenv("SPENDQL_CLI_TIMEOUT"), 30*time.Second),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}

	os.Exit(spendqlctl.Run(context.Background(), os.Args[1:], defaults))
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func parseDurationWithDefault(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
