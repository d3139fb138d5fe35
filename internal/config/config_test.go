package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_PATH", "FIT_VARIANT", "RATE_LIMIT_PER_MINUTE", "FIT_MODEL_PATH"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != ":8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.FitVariant != "eco" {
		t.Errorf("FitVariant = %q", cfg.FitVariant)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Errorf("RateLimitPerMinute = %d", cfg.RateLimitPerMinute)
	}
	if cfg.FitModelPath != "./data/models/preference_fit_eco.json" {
		t.Errorf("FitModelPath = %q", cfg.FitModelPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", ":9090")
	t.Setenv("FIT_VARIANT", "base")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")

	cfg := Load()
	if cfg.Port != ":9090" || cfg.FitVariant != "base" || cfg.RateLimitPerMinute != 120 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")
	if got := Load().RateLimitPerMinute; got != 60 {
		t.Errorf("RateLimitPerMinute = %d, want 60", got)
	}
}

func TestFitModelPathFollowsVariant(t *testing.T) {
	tests := []struct {
		variant string
		path    string
		want    string
	}{
		{"base", "", "./data/models/preference_fit.json"},
		{"eco", "", "./data/models/preference_fit_eco.json"},
		{"", "", "./data/models/preference_fit_eco.json"},
		{"base", "/srv/models/fit.json", "/srv/models/fit.json"},
	}

	for _, tt := range tests {
		t.Run(tt.variant+tt.path, func(t *testing.T) {
			t.Setenv("FIT_VARIANT", tt.variant)
			t.Setenv("FIT_MODEL_PATH", tt.path)
			if got := Load().FitModelPath; got != tt.want {
				t.Errorf("FitModelPath = %q, want %q", got, tt.want)
			}
		})
	}
}
