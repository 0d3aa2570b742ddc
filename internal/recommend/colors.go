// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/ludolog/internal/metrics"
	"github.com/tomtom215/ludolog/internal/models"
	"github.com/tomtom215/ludolog/internal/recommend/algorithms"
	"github.com/tomtom215/ludolog/internal/storage"
)

// SuggestColors predicts colors for one target player. Voters are the
// synthetic template-settings voter (caller-declared color order at full
// confidence, so template ordering dominates), the current game, and the
// target player. The transparent sentinel is always filtered, and the
// candidate limit spans the full palette so any color can surface once
// higher-ranked ones are excluded.
func (e *Engine) SuggestColors(sctx SituationContext, colorOrder []string, targetEntityID string, excludedColors []string) ([]Suggestion, error) {
	start := time.Now()
	metrics.SuggestionRequests.WithLabelValues(models.DomainColors).Inc()
	defer func() {
		metrics.SuggestionDuration.WithLabelValues(models.DomainColors).Observe(time.Since(start).Seconds())
	}()

	var voters []algorithms.Voter
	if tv, ok := templateVoter(colorOrder); ok {
		voters = append(voters, tv)
	}

	game, err := e.lookupGame(sctx)
	if err != nil {
		return nil, fmt.Errorf("suggest colors: %w", err)
	}
	if game != nil {
		voters = append(voters, algorithms.Voter{Entity: game, Factor: models.FactorGame})
	}

	if targetEntityID != "" {
		player, err := e.lookupByID(models.KindPlayer, targetEntityID)
		if err != nil {
			return nil, fmt.Errorf("suggest colors: %w", err)
		}
		if player != nil {
			voters = append(voters, algorithms.Voter{Entity: player, Factor: models.FactorPlayer})
		}
	}

	weights, err := e.store.GetWeights(models.DomainColors)
	if err != nil {
		return nil, fmt.Errorf("suggest colors: %w", err)
	}

	ignore := make(map[string]struct{}, len(excludedColors)+1)
	ignore[TransparentColor] = struct{}{}
	for _, c := range excludedColors {
		ignore[storage.NormalizeName(c)] = struct{}{}
	}

	paletteSize := len(e.cfg.Palette)
	if len(colorOrder) > paletteSize {
		paletteSize = len(colorOrder)
	}
	if paletteSize == 0 {
		return nil, nil
	}

	scores := algorithms.CalculateScores(voters, weights, models.RelationColors, ignore, paletteSize)

	out := make([]Suggestion, 0, len(scores))
	for _, s := range rankScores(scores) {
		out = append(out, Suggestion{ID: s.id, Name: s.id, Score: s.score})
	}
	return out, nil
}

// AssignColors gives every player a color in two phases. Phase 1 asks the
// color engine for each player in turn and takes its first unused
// suggestion. Phase 2 assigns any still-unassigned player the first
// unused color from the fallback palette (template colors first, then the
// remainder), so every player receives some color even when suggestions
// are exhausted.
func (e *Engine) AssignColors(sctx SituationContext, colorOrder []string, playerIDs []string) ([]ColorAssignment, error) {
	used := make(map[string]struct{})
	assignments := make([]ColorAssignment, len(playerIDs))
	for i, pid := range playerIDs {
		assignments[i] = ColorAssignment{PlayerID: pid}
	}

	// Phase 1: learned suggestions.
	for i, pid := range playerIDs {
		suggestions, err := e.SuggestColors(sctx, colorOrder, pid, usedList(used))
		if err != nil {
			return nil, fmt.Errorf("assign colors: %w", err)
		}
		for _, s := range suggestions {
			if _, taken := used[s.ID]; taken {
				continue
			}
			assignments[i].Color = s.ID
			used[s.ID] = struct{}{}
			break
		}
	}

	// Phase 2: fallback palette for anyone left without a color.
	fallback := fallbackPalette(colorOrder, e.cfg.Palette)
	for i := range assignments {
		if assignments[i].Color != "" {
			continue
		}
		assigned := ""
		for _, c := range fallback {
			if _, taken := used[c]; !taken {
				assigned = c
				break
			}
		}
		if assigned == "" && len(fallback) > 0 {
			// Palette exhausted; reuse deterministically rather than
			// leave the player without a color.
			assigned = fallback[i%len(fallback)]
		}
		assignments[i].Color = assigned
		used[assigned] = struct{}{}
	}

	return assignments, nil
}

// fallbackPalette merges the template order with the configured palette,
// template colors first, skipping the transparent sentinel and
// duplicates.
func fallbackPalette(colorOrder, palette []string) []string {
	seen := make(map[string]struct{}, len(colorOrder)+len(palette))
	out := make([]string, 0, len(colorOrder)+len(palette))
	for _, group := range [][]string{colorOrder, palette} {
		for _, c := range group {
			c = storage.NormalizeName(c)
			if c == "" || c == TransparentColor {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// usedList flattens the used-color set for the ignore parameter.
func usedList(used map[string]struct{}) []string {
	out := make([]string, 0, len(used))
	for c := range used {
		out = append(out, c)
	}
	return out
}
