package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the planner service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	StatsCacheTTL time.Duration
	// ReferenceTime pins the planner's notion of "now" for reproducible
	// runs. Zero means wall clock.
	ReferenceTime time.Time
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields and reports every
// invalid entry in one pass.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:planner.db",
		StatsCacheTTL: 30 * time.Second,
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("PLANNER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "PLANNER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("PLANNER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("PLANNER_STATS_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "PLANNER_STATS_CACHE_TTL")
		} else {
			cfg.StatsCacheTTL = ttl
		}
	}

	if refValue := strings.TrimSpace(os.Getenv("PLANNER_REFERENCE_TIME")); refValue != "" {
		ref, err := time.Parse(time.RFC3339, refValue)
		if err != nil {
			invalid = append(invalid, "PLANNER_REFERENCE_TIME")
		} else {
			cfg.ReferenceTime = ref.In(time.Local)
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
