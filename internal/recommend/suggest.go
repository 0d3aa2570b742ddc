// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import "sort"

// scored is an intermediate (id, score) pair for ranking score maps.
type scored struct {
	id    string
	score float64
}

// rankScores orders a score map descending by score, breaking ties by id
// so results are deterministic.
func rankScores(scores map[string]float64) []scored {
	out := make([]scored, 0, len(scores))
	for id, s := range scores {
		out = append(out, scored{id: id, score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].id < out[j].id
	})
	return out
}

// argmax returns the highest-scoring candidate, ties broken by id.
// ok is false when the map is empty or no candidate scores above zero.
func argmax(scores map[string]float64) (id string, score float64, ok bool) {
	for cid, s := range scores {
		if !ok || s > score || (s == score && cid < id) {
			id, score, ok = cid, s, true
		}
	}
	if !ok || score <= 0 {
		return "", 0, false
	}
	return id, score, true
}
