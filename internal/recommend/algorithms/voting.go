// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package algorithms

import "github.com/tomtom215/ludolog/internal/models"

// Voter pairs an entity with the situational factor it represents for one
// scoring pass. Voters are transient and never persisted.
type Voter struct {
	Entity *models.Entity

	// Factor tags the voter's role (game, location, weekday, ...) and
	// selects its global weight.
	Factor string

	// ConfidenceOverride, when > 0, replaces the entity's stored
	// confidence. Used by the recent-session and template-settings
	// voters, which always vote at full confidence.
	ConfidenceOverride float64
}

// confidence returns the effective confidence of the voter for a relation
// kind.
func (v Voter) confidence(relationKind string) float64 {
	if v.ConfidenceOverride > 0 {
		return models.ClampScale(v.ConfidenceOverride)
	}
	return v.Entity.ConfidenceFor(relationKind)
}

// CalculateScores runs one weighted voting pass.
//
// Each voter walks its ranked list for the relation kind in order. Ids in
// the ignore set are skipped without consuming a vote slot, so the next
// valid candidate backfills the slot. The k-th valid vote (0-indexed)
// contributes max(1, 5-k) * confidence * factorWeight to the candidate's
// accumulated score; a voter stops after candidateLimit valid votes.
// Voters with no list for the relation kind are skipped. The returned map
// is unsorted; callers order it descending by score.
func CalculateScores(voters []Voter, weights models.Weights, relationKind string, ignore map[string]struct{}, candidateLimit int) map[string]float64 {
	scores := make(map[string]float64)
	if candidateLimit <= 0 {
		return scores
	}

	for _, v := range voters {
		if v.Entity == nil {
			continue
		}
		list := v.Entity.Relation(relationKind)
		if len(list) == 0 {
			continue
		}

		conf := v.confidence(relationKind)
		factorWeight := weights.Get(v.Factor)

		votes := 0
		for _, e := range list {
			if _, skip := ignore[e.ID]; skip {
				continue
			}
			if votes >= candidateLimit {
				break
			}
			slot := 5 - votes
			if slot < 1 {
				slot = 1
			}
			scores[e.ID] += float64(slot) * conf * factorWeight
			votes++
		}
	}

	return scores
}

// TopWindowHit reports whether id falls inside the top-window prediction
// set of the list. Used by training to grade factor weights.
func TopWindowHit(list models.RankedList, id string, window int) bool {
	for i, e := range list {
		if i >= window {
			return false
		}
		if e.ID == id {
			return true
		}
	}
	return false
}
