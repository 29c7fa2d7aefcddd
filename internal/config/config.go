// Package config loads runtime configuration from the environment.
//
// Every variable carries the SKILLUP_ prefix. A .env file in the working
// directory is loaded first when present (see Load), so local development
// only needs a copy of .env.example.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "SKILLUP"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DuplicateAllow = "allow"
	DuplicateReuse = "reuse"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Auth      AuthConfig
	Checklist ChecklistConfig
	CORS      CORSConfig
	Metrics   MetricsConfig
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env       string `envconfig:"SKILLUP_APP_ENV" default:"dev"`
	Port      int    `envconfig:"SKILLUP_APP_PORT" default:"8080"`
	BaseURL   string `envconfig:"SKILLUP_BASE_URL"`
	LogLevel  string `envconfig:"SKILLUP_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"SKILLUP_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PublicURL is the externally reachable base URL, used to build the OAuth
// callback when none is configured explicitly.
func (a AppConfig) PublicURL() string {
	if a.BaseURL != "" {
		return strings.TrimRight(a.BaseURL, "/")
	}
	return fmt.Sprintf("http://localhost:%d", a.Port)
}

type DBConfig struct {
	Driver string `envconfig:"SKILLUP_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SKILLUP_DB_DSN" default:"data/skillup.db"`

	MaxOpenConns    int           `envconfig:"SKILLUP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SKILLUP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SKILLUP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SKILLUP_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"SKILLUP_DB_AUTO_MIGRATE" default:"true"`
}

type AuthConfig struct {
	SessionSecret string        `envconfig:"SKILLUP_SESSION_SECRET"`
	SessionTTL    time.Duration `envconfig:"SKILLUP_SESSION_TTL" default:"8h"`
	SecureCookie  bool          `envconfig:"SKILLUP_SECURE_COOKIE" default:"false"`

	GoogleClientID     string `envconfig:"SKILLUP_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"SKILLUP_GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `envconfig:"SKILLUP_GOOGLE_CALLBACK_URL"`
}

// GoogleEnabled reports whether enough credentials exist to register the
// OAuth routes.
func (a AuthConfig) GoogleEnabled() bool {
	return a.GoogleClientID != "" && a.GoogleClientSecret != ""
}

type ChecklistConfig struct {
	// DuplicatePolicy decides what POST /api/checklist does when the caller
	// already owns a checklist for the requested path: "allow" creates
	// another one, "reuse" returns the existing one.
	DuplicatePolicy string `envconfig:"SKILLUP_CHECKLIST_DUPLICATE_POLICY" default:"allow"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SKILLUP_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"SKILLUP_METRICS_ENABLED" default:"true"`
}

func (c *Config) validate() error {
	switch strings.ToLower(c.DB.Driver) {
	case DriverSQLite, DriverPostgres:
		c.DB.Driver = strings.ToLower(c.DB.Driver)
	default:
		return fmt.Errorf("config: unsupported %s_DB_DRIVER %q (want %s or %s)",
			EnvPrefix, c.DB.Driver, DriverSQLite, DriverPostgres)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("config: %s_DB_DSN is required", EnvPrefix)
	}

	switch strings.ToLower(c.Checklist.DuplicatePolicy) {
	case DuplicateAllow, DuplicateReuse:
		c.Checklist.DuplicatePolicy = strings.ToLower(c.Checklist.DuplicatePolicy)
	default:
		return fmt.Errorf("config: unsupported %s_CHECKLIST_DUPLICATE_POLICY %q", EnvPrefix, c.Checklist.DuplicatePolicy)
	}

	if c.App.IsProd() && len(c.Auth.SessionSecret) < 16 {
		return fmt.Errorf("config: %s_SESSION_SECRET must be at least 16 characters in prod", EnvPrefix)
	}

	if c.Auth.GoogleCallbackURL == "" {
		c.Auth.GoogleCallbackURL = c.App.PublicURL() + "/auth/google/callback"
	}
	return nil
}
