package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		shouldError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:        "missing session secret is fatal",
			env:         map[string]string{},
			shouldError: true,
		},
		{
			name: "defaults applied",
			env:  map[string]string{"SESSION_SECRET": "test-secret"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.BaseURL != "http://localhost:8080" {
					t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
				}
				if cfg.DatabaseURL == "" {
					t.Error("DatabaseURL should have a default")
				}
			},
		},
		{
			name: "explicit values win over defaults",
			env: map[string]string{
				"SESSION_SECRET": "test-secret",
				"DATABASE_URL":   "gather.db",
				"BASE_URL":       "https://gather.example.com",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.DatabaseURL != "gather.db" {
					t.Errorf("DatabaseURL = %q, want gather.db", cfg.DatabaseURL)
				}
				if cfg.BaseURL != "https://gather.example.com" {
					t.Errorf("BaseURL = %q", cfg.BaseURL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// t.Setenv clears between subtests; explicitly blank the secret so
			// the fatal case does not see a value leaked from the host env.
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.shouldError {
				if err == nil {
					t.Fatal("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
