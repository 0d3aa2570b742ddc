// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

// Package config loads and validates the Ludolog configuration via Koanf
// v2 with layered sources (highest priority wins): environment variables,
// config file (yaml), built-in defaults.
package config

import (
	"fmt"

	"github.com/tomtom215/ludolog/internal/models"
)

// Config is the complete application configuration.
type Config struct {
	// DataDir is the BadgerDB directory for the entity store.
	DataDir string `koanf:"data_dir"`

	Logging LoggingConfig `koanf:"logging"`
	Engine  EngineConfig  `koanf:"engine"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DynamicWindowConfig configures a pool-proportional prediction window.
type DynamicWindowConfig struct {
	Ratio float64 `koanf:"ratio"`
	Cap   int     `koanf:"cap"`
}

// WindowConfig configures the prediction-window policy per relation kind.
type WindowConfig struct {
	Fixed         map[string]int                 `koanf:"fixed"`
	Dynamic       map[string]DynamicWindowConfig `koanf:"dynamic"`
	FallbackRatio float64                        `koanf:"fallback_ratio"`
	FallbackCap   int                            `koanf:"fallback_cap"`
}

// EngineConfig holds the tunables of the learning engine.
type EngineConfig struct {
	// MaxListLength caps ranked lists per relation kind.
	MaxListLength map[string]int `koanf:"max_list_length"`

	Windows WindowConfig `koanf:"windows"`

	// ChunkSize is the batch-reprocessing chunk size; each chunk is one
	// transaction.
	ChunkSize int `koanf:"chunk_size"`

	// MaxSuggestions bounds the number of candidates a suggestion call
	// returns.
	MaxSuggestions int `koanf:"max_suggestions"`

	// Palette is the fallback color palette used by the color
	// assignment coordinator.
	Palette []string `koanf:"palette"`
}

// Default returns a Config with all default values. Defaults are applied
// first, then overridden by config file and environment variables.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Engine: EngineConfig{
			MaxListLength: map[string]int{
				models.RelationPlayers:      30,
				models.RelationLocations:    20,
				models.RelationColors:       20,
				models.RelationPlayerCounts: 10,
				models.RelationWeekdays:     7,
				models.RelationTimeSlots:    8,
				models.RelationGameModes:    10,
			},
			Windows: WindowConfig{
				Fixed: map[string]int{
					models.RelationPlayerCounts: 3,
					models.RelationWeekdays:     3,
					models.RelationTimeSlots:    3,
					models.RelationGameModes:    2,
					models.RelationColors:       4,
				},
				Dynamic: map[string]DynamicWindowConfig{
					models.RelationPlayers:   {Ratio: 0.4, Cap: 10},
					models.RelationLocations: {Ratio: 0.5, Cap: 5},
				},
				FallbackRatio: 0.5,
				FallbackCap:   5,
			},
			ChunkSize:      25,
			MaxSuggestions: 10,
			Palette: []string{
				"red", "blue", "green", "yellow", "black", "white",
				"orange", "purple", "pink", "brown", "gray", "teal",
			},
		},
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Engine.ChunkSize < 1 {
		return fmt.Errorf("engine.chunk_size must be >= 1, got %d", c.Engine.ChunkSize)
	}
	if c.Engine.MaxSuggestions < 1 {
		return fmt.Errorf("engine.max_suggestions must be >= 1, got %d", c.Engine.MaxSuggestions)
	}
	for kind, n := range c.Engine.MaxListLength {
		if n < 1 {
			return fmt.Errorf("engine.max_list_length[%s] must be >= 1, got %d", kind, n)
		}
	}
	for kind, n := range c.Engine.Windows.Fixed {
		if n < 1 {
			return fmt.Errorf("engine.windows.fixed[%s] must be >= 1, got %d", kind, n)
		}
	}
	for kind, d := range c.Engine.Windows.Dynamic {
		if d.Ratio <= 0 || d.Ratio > 1 {
			return fmt.Errorf("engine.windows.dynamic[%s].ratio must be in (0, 1], got %v", kind, d.Ratio)
		}
		if d.Cap < 1 {
			return fmt.Errorf("engine.windows.dynamic[%s].cap must be >= 1, got %d", kind, d.Cap)
		}
	}
	if len(c.Engine.Palette) == 0 {
		return fmt.Errorf("engine.palette must not be empty")
	}
	return nil
}

// MaxLengthFor returns the ranked-list cap for a relation kind, with a
// generous default for unknown kinds.
func (e *EngineConfig) MaxLengthFor(relationKind string) int {
	if n, ok := e.MaxListLength[relationKind]; ok && n > 0 {
		return n
	}
	return 20
}
