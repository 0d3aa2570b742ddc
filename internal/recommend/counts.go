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

// SuggestCounts predicts likely player counts for the context in a single
// voting pass over the playerCounts relation. Bucket ids are decoded back
// into numeric counts; results are truncated to the prediction window.
func (e *Engine) SuggestCounts(sctx SituationContext) ([]CountSuggestion, error) {
	start := time.Now()
	metrics.SuggestionRequests.WithLabelValues(models.DomainPlayerCounts).Inc()
	defer func() {
		metrics.SuggestionDuration.WithLabelValues(models.DomainPlayerCounts).Observe(time.Since(start).Seconds())
	}()

	voters, err := e.contextVoters(sctx)
	if err != nil {
		return nil, fmt.Errorf("suggest counts: %w", err)
	}

	weights, err := e.store.GetWeights(models.DomainPlayerCounts)
	if err != nil {
		return nil, fmt.Errorf("suggest counts: %w", err)
	}

	window := e.windowFor(models.RelationPlayerCounts, models.KindPlayerCount)
	scores := algorithms.CalculateScores(voters, weights, models.RelationPlayerCounts, nil, window)

	out := make([]CountSuggestion, 0, window)
	for _, s := range rankScores(scores) {
		if len(out) >= window {
			break
		}
		n, ok := models.PlayerCountFromBucketID(s.id)
		if !ok {
			continue
		}
		out = append(out, CountSuggestion{Count: n, Score: s.score})
	}
	return out, nil
}
