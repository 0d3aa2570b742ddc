// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/ludolog/internal/models"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Errorf("Default() fails validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults pass",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: true,
		},
		{
			name:    "zero chunk size",
			mutate:  func(c *Config) { c.Engine.ChunkSize = 0 },
			wantErr: true,
		},
		{
			name:    "zero max suggestions",
			mutate:  func(c *Config) { c.Engine.MaxSuggestions = 0 },
			wantErr: true,
		},
		{
			name: "dynamic ratio above one",
			mutate: func(c *Config) {
				c.Engine.Windows.Dynamic[models.RelationPlayers] = DynamicWindowConfig{Ratio: 1.5, Cap: 10}
			},
			wantErr: true,
		},
		{
			name:    "empty palette",
			mutate:  func(c *Config) { c.Engine.Palette = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaxLengthFor(t *testing.T) {
	t.Parallel()

	e := Default().Engine
	if got := e.MaxLengthFor(models.RelationPlayers); got != 30 {
		t.Errorf("MaxLengthFor(players) = %d, want 30", got)
	}
	if got := e.MaxLengthFor("unknown"); got != 20 {
		t.Errorf("MaxLengthFor(unknown) = %d, want 20", got)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ludolog.yaml")
	content := []byte("data_dir: /var/lib/ludolog\nengine:\n  chunk_size: 50\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/var/lib/ludolog" {
		t.Errorf("DataDir = %q, want /var/lib/ludolog", cfg.DataDir)
	}
	if cfg.Engine.ChunkSize != 50 {
		t.Errorf("ChunkSize = %d, want 50", cfg.Engine.ChunkSize)
	}
	// Untouched values keep their defaults.
	if cfg.Engine.MaxSuggestions != 10 {
		t.Errorf("MaxSuggestions = %d, want default 10", cfg.Engine.MaxSuggestions)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ludolog.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  chunk_size: 50\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("LUDOLOG_ENGINE_CHUNK_SIZE", "75")
	t.Setenv("LUDOLOG_LOGGING_LEVEL", "debug")
	t.Setenv("LUDOLOG_DATA_DIR", "/tmp/ludolog-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.ChunkSize != 75 {
		t.Errorf("ChunkSize = %d, want env override 75", cfg.Engine.ChunkSize)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.DataDir != "/tmp/ludolog-test" {
		t.Errorf("DataDir = %q, want /tmp/ludolog-test", cfg.DataDir)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ludolog.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  chunk_size: 0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for chunk_size 0")
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"LUDOLOG_DATA_DIR", "data_dir"},
		{"LUDOLOG_LOGGING_LEVEL", "logging.level"},
		{"LUDOLOG_ENGINE_CHUNK_SIZE", "engine.chunk_size"},
		{"LUDOLOG_ENGINE_MAX_SUGGESTIONS", "engine.max_suggestions"},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
