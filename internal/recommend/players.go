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
)

// SuggestPlayers predicts up to limit players for the context via
// iterative chained selection: each picked player joins the voter set as
// a peer, steering the next pick toward their frequent co-players.
// Selection stops early once no candidate scores above zero.
func (e *Engine) SuggestPlayers(sctx SituationContext, limit int) ([]PlayerSuggestion, error) {
	start := time.Now()
	metrics.SuggestionRequests.WithLabelValues(models.DomainPlayers).Inc()
	defer func() {
		metrics.SuggestionDuration.WithLabelValues(models.DomainPlayers).Observe(time.Since(start).Seconds())
	}()

	if limit <= 0 {
		limit = e.cfg.MaxSuggestions
	}
	if limit > e.cfg.MaxSuggestions {
		limit = e.cfg.MaxSuggestions
	}

	base, err := e.contextVoters(sctx)
	if err != nil {
		return nil, fmt.Errorf("suggest players: %w", err)
	}

	weights, err := e.store.GetWeights(models.DomainPlayers)
	if err != nil {
		return nil, fmt.Errorf("suggest players: %w", err)
	}

	candidateLimit := e.windowFor(models.RelationPlayers, models.KindPlayer)

	ignore := make(map[string]struct{}, len(sctx.PlayerIDs)+limit)
	for _, id := range sctx.PlayerIDs {
		ignore[id] = struct{}{}
	}

	var selected []PlayerSuggestion
	var peers []algorithms.Voter

	for len(selected) < limit {
		voters := append(append([]algorithms.Voter{}, base...), peers...)
		scores := algorithms.CalculateScores(voters, weights, models.RelationPlayers, ignore, candidateLimit)

		id, score, ok := argmax(scores)
		if !ok {
			break
		}
		ignore[id] = struct{}{}

		player, err := e.lookupByID(models.KindPlayer, id)
		if err != nil {
			return nil, fmt.Errorf("suggest players: %w", err)
		}
		if player == nil {
			// Stale relation entry pointing at a vanished entity.
			continue
		}

		selected = append(selected, PlayerSuggestion{
			Suggestion: Suggestion{ID: id, Name: player.Name, Score: score},
			Color:      topColor(player),
		})
		peers = append(peers, algorithms.Voter{Entity: player, Factor: models.FactorRelatedPlayer})
	}

	return selected, nil
}

// topColor returns the player's highest-ranked learned color, skipping
// the transparent sentinel.
func topColor(player *models.Entity) string {
	for _, entry := range player.Relation(models.RelationColors) {
		if entry.ID == TransparentColor {
			continue
		}
		return entry.ID
	}
	return ""
}
