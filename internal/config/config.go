package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"specialcare/internal/planner"
)

// Config holds application configuration
type Config struct {
	DatabaseType   string `env:"DB_TYPE" envDefault:"sqlite"`
	DatabasePath   string `env:"DB_PATH" envDefault:"./specialcare.db"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH"`

	LogMode         string `env:"LOG_MODE" envDefault:"dev"`
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// Email digest (AWS SES). Leaving SES_FROM_EMAIL empty disables sending
	AWSRegion  string `env:"AWS_REGION" envDefault:"us-east-1"`
	FromEmail  string `env:"SES_FROM_EMAIL"`
	FromName   string `env:"SES_FROM_NAME" envDefault:"SpecialCare"`
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	EmailDebug bool   `env:"EMAIL_DEBUG"`

	Planner PlannerConfig `envPrefix:"PLANNER_"`
}

// PlannerConfig carries the engine's tunable thresholds. The defaults match
// planner.DefaultThresholds
type PlannerConfig struct {
	SevereBelow       float64 `env:"SEVERE_BELOW" envDefault:"50"`
	ModerateBelow     float64 `env:"MODERATE_BELOW" envDefault:"70"`
	EnrichmentAt      float64 `env:"ENRICHMENT_AT" envDefault:"85"`
	AgeAdaptiveSplit  float64 `env:"AGE_ADAPTIVE_SPLIT" envDefault:"70"`
	DurationStep      int     `env:"DURATION_STEP" envDefault:"5"`
	DurationCap       int     `env:"DURATION_CAP" envDefault:"30"`
	ToddlerMaxAge     int     `env:"TODDLER_MAX_AGE" envDefault:"3"`
	PreschoolMaxAge   int     `env:"PRESCHOOL_MAX_AGE" envDefault:"5"`
	EarlySchoolMaxAge int     `env:"EARLY_SCHOOL_MAX_AGE" envDefault:"7"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations env tags cannot express
func (c *Config) Validate() error {
	switch c.DatabaseType {
	case "sqlite":
	case "postgres", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when DB_TYPE=%s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DatabaseType)
	}
	if err := c.Thresholds().Validate(); err != nil {
		return fmt.Errorf("invalid planner thresholds: %w", err)
	}
	return nil
}

// Thresholds converts the planner settings for the engine
func (c *Config) Thresholds() planner.Thresholds {
	p := c.Planner
	return planner.Thresholds{
		SevereBelow:       p.SevereBelow,
		ModerateBelow:     p.ModerateBelow,
		EnrichmentAt:      p.EnrichmentAt,
		AgeAdaptiveSplit:  p.AgeAdaptiveSplit,
		DurationStep:      p.DurationStep,
		DurationCap:       p.DurationCap,
		ToddlerMaxAge:     p.ToddlerMaxAge,
		PreschoolMaxAge:   p.PreschoolMaxAge,
		EarlySchoolMaxAge: p.EarlySchoolMaxAge,
	}
}

// DSN returns the connection string for the configured database
func (c *Config) DSN() string {
	if c.DatabaseType == "sqlite" {
		return c.DatabasePath
	}
	return c.DatabaseURL
}
