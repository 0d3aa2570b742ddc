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

// SuggestLocations predicts likely locations for the context in a single
// voting pass over the locations relation. Known players join the
// context voters, since where a group plays depends heavily on who is
// playing. Candidate ids are resolved to display names.
func (e *Engine) SuggestLocations(sctx SituationContext) ([]Suggestion, error) {
	start := time.Now()
	metrics.SuggestionRequests.WithLabelValues(models.DomainLocations).Inc()
	defer func() {
		metrics.SuggestionDuration.WithLabelValues(models.DomainLocations).Observe(time.Since(start).Seconds())
	}()

	voters, err := e.contextVoters(sctx)
	if err != nil {
		return nil, fmt.Errorf("suggest locations: %w", err)
	}

	players, err := e.playerVoters(sctx.PlayerIDs, models.FactorPlayer)
	if err != nil {
		return nil, fmt.Errorf("suggest locations: %w", err)
	}
	voters = append(voters, players...)

	weights, err := e.store.GetWeights(models.DomainLocations)
	if err != nil {
		return nil, fmt.Errorf("suggest locations: %w", err)
	}

	window := e.windowFor(models.RelationLocations, models.KindLocation)
	scores := algorithms.CalculateScores(voters, weights, models.RelationLocations, nil, window)

	out := make([]Suggestion, 0, window)
	for _, s := range rankScores(scores) {
		if len(out) >= window {
			break
		}
		loc, err := e.lookupByID(models.KindLocation, s.id)
		if err != nil {
			return nil, fmt.Errorf("suggest locations: %w", err)
		}
		name := s.id
		if loc != nil {
			name = loc.Name
		}
		out = append(out, Suggestion{ID: s.id, Name: name, Score: s.score})
	}
	return out, nil
}
