package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatabaseURL           string
	RedisURL              string
	ReportCacheTTL        time.Duration
	HTTPPort              string
	AdminAPIKey           string
	ReportWorkerInterval  time.Duration
	ReportHistoryLimit    int
	GoogleSheetsID        string
	GoogleCredentialsJSON string
	LogLevel              string
	LogFormat             string
}

// LoadDotEnv preloads variables from the given .env files (default ".env").
// Missing files are ignored; variables already set in the environment win.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to read env file", "path", p, "error", err)
		}
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DatabaseURL:           envOrDefaultWarn("DATABASE_URL", ""),
		RedisURL:              envOrDefault("REDIS_URL", ""),
		ReportCacheTTL:        envOrDefaultDuration("REPORT_CACHE_TTL", 10*time.Minute),
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey:           envOrDefault("ADMIN_API_KEY", ""),
		ReportWorkerInterval:  envOrDefaultDuration("REPORT_WORKER_INTERVAL", 24*time.Hour),
		ReportHistoryLimit:    envOrDefaultInt("REPORT_HISTORY_LIMIT", 30),
		GoogleSheetsID:        envOrDefault("GOOGLE_SHEETS_ID", ""),
		GoogleCredentialsJSON: envOrDefault("GOOGLE_CREDENTIALS_JSON", ""),
		LogLevel:              envOrDefault("LOG_LEVEL", "info"),
		LogFormat:             envOrDefault("LOG_FORMAT", "text"),
	}
}

// SheetsEnabled reports whether Google Sheets export is configured.
func (c Config) SheetsEnabled() bool {
	return c.GoogleSheetsID != "" && c.GoogleCredentialsJSON != ""
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewLogger builds the process logger: JSON when LogFormat is "json", text otherwise.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
