// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

// Package main is the Ludolog command-line front-end.
//
// Ludolog learns relationships from finalized board-game sessions and
// suggests players, player counts, locations, and color assignments for
// upcoming ones. The CLI wraps the in-process engine for recording,
// maintenance, and inspection; all state lives in a local BadgerDB
// directory.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (LUDOLOG_ prefix, e.g. LUDOLOG_DATA_DIR)
//   - Config file (ludolog.yaml, or --config)
//   - Built-in defaults
package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ludolog/internal/config"
	"github.com/tomtom215/ludolog/internal/logging"
	"github.com/tomtom215/ludolog/internal/recommend"
	"github.com/tomtom215/ludolog/internal/storage"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ludolog",
	Short: "Adaptive board game session tracking and recommendations",
	Long: `Ludolog records finalized board game sessions, learns which players,
locations, player counts, and colors tend to go together, and suggests
them for the next session. All learned state is stored locally.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ludolog.yaml)")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(reprocessCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withEngine loads configuration, initializes logging, opens the store,
// and hands a ready engine to fn, closing the store afterwards.
func withEngine(fn func(*recommend.Engine, *config.Config) error) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	store, err := storage.Open(storage.Options{Dir: cfg.DataDir})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing store")
		}
	}()

	engine, err := recommend.NewEngine(store, cfg.Engine)
	if err != nil {
		return err
	}
	return fn(engine, cfg)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
