package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
// Every value has a default so the process always boots.
type Config struct {
	DBPath               string
	ProjectDBPath        string
	SessionSecret        string
	SessionTTLSeconds    int64
	AdminPassword        string
	OwnerPassword        string
	CorsOrigins          []string
	MetricsDiskPath      string
	MetricsSampleSeconds int
}

func Load() Config {
	return Config{
		DBPath:               envOr("DB_PATH", ""),
		ProjectDBPath:        envOr("PROJECT_DB_PATH", "rvce_fee.db"),
		SessionSecret:        envOr("SESSION_SECRET", "rvce_fee_management_secret_2024"),
		SessionTTLSeconds:    int64(envOrInt("SESSION_TTL_SECONDS", 86400)),
		AdminPassword:        envOr("ADMIN_PASSWORD", "admin.rvce.in"),
		OwnerPassword:        envOr("OWNER_PASSWORD", "owner.rvce.in"),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "."),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 15),
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
