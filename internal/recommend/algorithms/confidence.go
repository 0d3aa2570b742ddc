// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package algorithms

import (
	"math"

	"github.com/tomtom215/ludolog/internal/models"
)

// Confidence adaptation constants.
const (
	// fullVisibilityStep is the growth step when the whole pool fits in
	// the prediction window.
	fullVisibilityStep = 0.5

	// partialVisibilityStep is the growth step for long lists where only
	// the window is visible.
	partialVisibilityStep = 0.1

	// missStep is the base penalty per active id outside the window.
	missStep = 0.2

	// dampingThreshold and dampingMinLength gate growth damping near the
	// ceiling: damping applies once confidence >= 3.0 on lists of at
	// least 10 entries.
	dampingThreshold = 3.0
	dampingMinLength = 10
)

// AdjustConfidence returns the updated confidence of an entity's ranked
// list as a predictor, given the ids observed in the current event and the
// prediction-window size.
//
// With an empty list there is no evidence to judge, and the current value
// is returned unchanged. Otherwise each active id inside the top-window
// prediction set grows confidence, each id outside shrinks it; the penalty
// is scaled down while the list is still shorter than the window, and
// growth is damped as the value approaches the ceiling. The result is
// clamped to [0.2, 5.0] and rounded to two decimals.
func AdjustConfidence(list models.RankedList, activeIDs []string, current float64, window int) float64 {
	if len(list) == 0 {
		return current
	}
	if window < 1 {
		window = 1
	}

	predicted := make(map[string]struct{}, window)
	for i, e := range list {
		if i >= window {
			break
		}
		predicted[e.ID] = struct{}{}
	}

	baseStep := partialVisibilityStep
	penaltyFactor := 1.0
	if len(list) <= window {
		baseStep = fullVisibilityStep
		penaltyFactor = float64(len(list)) / float64(window)
	}

	growthDamping := 1.0
	if current >= dampingThreshold && len(list) >= dampingMinLength {
		growthDamping = 1.0 - current/models.MaxScale
	}

	delta := 0.0
	for _, id := range activeIDs {
		if id == "" {
			continue
		}
		if _, hit := predicted[id]; hit {
			delta += baseStep * growthDamping
		} else {
			delta -= missStep * penaltyFactor
		}
	}

	return roundScale(models.ClampScale(current + delta))
}

// roundScale rounds a bounded scalar to two decimals.
func roundScale(v float64) float64 {
	return math.Round(v*100) / 100
}
