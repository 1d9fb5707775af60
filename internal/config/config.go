// Package config loads the site configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort           = 8080
	DefaultRelayBaseURL   = "https://formspree.io/f"
	DefaultRelayTimeout   = 10
	DefaultDatabasePath   = "portfolio.db"
	DefaultResumePath     = "static/resume.pdf"
	DefaultRetentionMonth = 12
)

// ErrMissingFormID is returned when FORMSPREE_ID is unset. The site refuses
// to start without it.
var ErrMissingFormID = errors.New("FORMSPREE_ID is not defined in environment variables")

// Config holds all application configuration
type Config struct {
	Port         int
	GinMode      string
	LogMode      string
	SiteURL      string
	DatabasePath string
	ResumePath   string

	FormID       string
	RelayBaseURL string
	RelayTimeout time.Duration

	AdminUsername string
	AdminPassword string
	// DefaultAdmin is set when either admin credential fell back to its
	// development default.
	DefaultAdmin bool
	// SessionSecret signs admin sessions. Empty means a random per-process
	// secret, so sessions end on restart.
	SessionSecret string

	RetentionMonths int
	CORSOrigins     []string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	formID := strings.TrimSpace(os.Getenv("FORMSPREE_ID"))
	if formID == "" {
		return nil, ErrMissingFormID
	}

	port := getEnvInt("PORT", DefaultPort)
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", port)
	}

	cfg := &Config{
		Port:            port,
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogMode:         getEnv("LOG_MODE", "development"),
		SiteURL:         strings.TrimRight(getEnv("SITE_URL", fmt.Sprintf("http://localhost:%d", port)), "/"),
		DatabasePath:    getEnv("DATABASE_PATH", DefaultDatabasePath),
		ResumePath:      getEnv("RESUME_PATH", DefaultResumePath),
		FormID:          formID,
		RelayBaseURL:    strings.TrimRight(getEnv("FORM_RELAY_BASE_URL", DefaultRelayBaseURL), "/"),
		RelayTimeout:    time.Duration(getEnvInt("FORM_RELAY_TIMEOUT_SECONDS", DefaultRelayTimeout)) * time.Second,
		AdminUsername:   strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		SessionSecret:   os.Getenv("ADMIN_SESSION_SECRET"),
		RetentionMonths: getEnvInt("VISITOR_RETENTION_MONTHS", DefaultRetentionMonth),
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),
	}

	// Default credentials for development
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		cfg.DefaultAdmin = true
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		cfg.DefaultAdmin = true
	}
	if cfg.SessionSecret != "" && len(cfg.SessionSecret) < 32 {
		return nil, errors.New("ADMIN_SESSION_SECRET must be at least 32 characters")
	}
	if cfg.RelayTimeout <= 0 {
		cfg.RelayTimeout = DefaultRelayTimeout * time.Second
	}
	if cfg.RetentionMonths <= 0 {
		cfg.RetentionMonths = DefaultRetentionMonth
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
