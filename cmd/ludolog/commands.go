// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ludolog/internal/config"
	"github.com/tomtom215/ludolog/internal/models"
	"github.com/tomtom215/ludolog/internal/recommend"
)

var recordCmd = &cobra.Command{
	Use:   "record <session.json>",
	Short: "Train the model on one finalized session record",
	Long: `Read a finalized session record (or an array of them) from a JSON file
and feed it to the training pipeline. Records already processed are
skipped; records previously trained without a location get a
location-only completion pass.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords(args[0])
		if err != nil {
			return err
		}
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			for _, r := range records {
				if err := engine.RecordSessionCompletion(r); err != nil {
					return err
				}
			}
			fmt.Printf("recorded %d session(s)\n", len(records))
			return nil
		})
	},
}

var reprocessCmd = &cobra.Command{
	Use:   "reprocess <sessions.json>",
	Short: "Reprocess a full session history in bulk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecords(args[0])
		if err != nil {
			return err
		}
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			last := -1
			err := engine.ReprocessAllHistory(cmd.Context(), records, func(pct int) {
				if pct != last {
					fmt.Printf("\rreprocessing: %3d%%", pct)
					last = pct
				}
			})
			fmt.Println()
			return err
		})
	},
}

// Shared situational-context flags for the suggest subcommands.
var (
	flagGameName    string
	flagGameExtID   string
	flagLocation    string
	flagPlayerCount int
	flagMode        string
	flagAt          string
	flagPlayers     []string
)

func contextFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagGameName, "game", "", "game name")
	cmd.Flags().StringVar(&flagGameExtID, "game-ext-id", "", "external game id (e.g. BGG id)")
	cmd.Flags().StringVar(&flagLocation, "location", "", "location name")
	cmd.Flags().IntVar(&flagPlayerCount, "count", 0, "expected player count")
	cmd.Flags().StringVar(&flagMode, "mode", "", "scoring mode")
	cmd.Flags().StringVar(&flagAt, "at", "", "session time, RFC 3339 (default: now)")
	cmd.Flags().StringSliceVar(&flagPlayers, "players", nil, "already-known player entity ids")
}

func situationFromFlags() (recommend.SituationContext, error) {
	at := time.Now()
	if flagAt != "" {
		parsed, err := time.Parse(time.RFC3339, flagAt)
		if err != nil {
			return recommend.SituationContext{}, fmt.Errorf("parse --at: %w", err)
		}
		at = parsed
	}
	return recommend.SituationContext{
		GameName:       flagGameName,
		GameExternalID: flagGameExtID,
		LocationName:   flagLocation,
		PlayerCount:    flagPlayerCount,
		Mode:           flagMode,
		Timestamp:      at,
		PlayerIDs:      flagPlayers,
	}, nil
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest players, counts, locations, or colors for a session context",
}

var suggestPlayersCmd = &cobra.Command{
	Use:   "players",
	Short: "Suggest players for the given context",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sctx, err := situationFromFlags()
		if err != nil {
			return err
		}
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			suggestions, err := engine.SuggestPlayers(sctx, limit)
			if err != nil {
				return err
			}
			return printJSON(suggestions)
		})
	},
}

var suggestCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Suggest likely player counts for the given context",
	RunE: func(cmd *cobra.Command, args []string) error {
		sctx, err := situationFromFlags()
		if err != nil {
			return err
		}
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			suggestions, err := engine.SuggestCounts(sctx)
			if err != nil {
				return err
			}
			return printJSON(suggestions)
		})
	},
}

var suggestLocationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Suggest likely locations for the given context",
	RunE: func(cmd *cobra.Command, args []string) error {
		sctx, err := situationFromFlags()
		if err != nil {
			return err
		}
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			suggestions, err := engine.SuggestLocations(sctx)
			if err != nil {
				return err
			}
			return printJSON(suggestions)
		})
	},
}

var suggestColorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Suggest colors for one player, or assign colors to all",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetString("player")
		order, _ := cmd.Flags().GetStringSlice("order")
		excluded, _ := cmd.Flags().GetStringSlice("exclude")
		sctx, err := situationFromFlags()
		if err != nil {
			return err
		}
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			if target != "" {
				suggestions, err := engine.SuggestColors(sctx, order, target, excluded)
				if err != nil {
					return err
				}
				return printJSON(suggestions)
			}
			assignments, err := engine.AssignColors(sctx, order, flagPlayers)
			if err != nil {
				return err
			}
			return printJSON(assignments)
		})
	},
}

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Inspect or override learned factor weights",
}

var weightsShowCmd = &cobra.Command{
	Use:   "show <domain>",
	Short: "Show the weight configuration of a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			w, err := engine.GetWeights(args[0])
			if err != nil {
				return err
			}
			return printJSON(w)
		})
	},
}

var weightsSetCmd = &cobra.Command{
	Use:   "set <domain> <factor> <value>",
	Short: "Override one factor weight of a domain",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("parse value %q: %w", args[2], err)
		}
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			w, err := engine.GetWeights(args[0])
			if err != nil {
				return err
			}
			w.Set(args[1], value)
			return engine.SaveWeights(args[0], w)
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all learned state",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("reset erases all learned state; re-run with --force to confirm")
		}
		return withEngine(func(engine *recommend.Engine, _ *config.Config) error {
			if err := engine.ResetModel(); err != nil {
				return err
			}
			fmt.Println("model reset")
			return nil
		})
	},
}

func init() {
	suggestPlayersCmd.Flags().Int("limit", 5, "number of players to suggest")
	suggestColorsCmd.Flags().String("player", "", "target player entity id (omit to assign colors to --players)")
	suggestColorsCmd.Flags().StringSlice("order", nil, "template color order, best first")
	suggestColorsCmd.Flags().StringSlice("exclude", nil, "colors already taken")

	for _, cmd := range []*cobra.Command{suggestPlayersCmd, suggestCountsCmd, suggestLocationsCmd, suggestColorsCmd} {
		contextFlags(cmd)
		suggestCmd.AddCommand(cmd)
	}

	weightsCmd.AddCommand(weightsShowCmd)
	weightsCmd.AddCommand(weightsSetCmd)
	resetCmd.Flags().Bool("force", false, "confirm erasing all learned state")
}

// readRecords parses a JSON file holding either one session record or an
// array of them.
func readRecords(path string) ([]*models.SessionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var records []*models.SessionRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return records, nil
	}

	var record models.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return []*models.SessionRecord{&record}, nil
}
