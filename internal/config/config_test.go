package config

import (
	"testing"

	"specialcare/internal/planner"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want en", cfg.DefaultLanguage)
	}
	if got, want := cfg.Thresholds(), planner.DefaultThresholds(); got != want {
		t.Errorf("Thresholds() = %+v, want %+v", got, want)
	}
	if cfg.DSN() != cfg.DatabasePath {
		t.Errorf("DSN() = %q, want %q", cfg.DSN(), cfg.DatabasePath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/specialcare")
	t.Setenv("PLANNER_DURATION_CAP", "25")
	t.Setenv("EMAIL_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DSN() != "postgres://localhost/specialcare" {
		t.Errorf("DSN() = %q", cfg.DSN())
	}
	if cfg.Thresholds().DurationCap != 25 {
		t.Errorf("DurationCap = %d, want 25", cfg.Thresholds().DurationCap)
	}
	if !cfg.EmailDebug {
		t.Error("EmailDebug = false, want true")
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown db type", map[string]string{"DB_TYPE": "oracle"}},
		{"postgres without url", map[string]string{"DB_TYPE": "postgres"}},
		{"inverted severity", map[string]string{"PLANNER_SEVERE_BELOW": "80"}},
		{"bad number", map[string]string{"PLANNER_DURATION_CAP": "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}
