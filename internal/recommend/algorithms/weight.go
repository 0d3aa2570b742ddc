// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package algorithms

import "github.com/tomtom215/ludolog/internal/models"

// Weight adaptation constants.
const (
	weightHitStep          = 0.1
	weightMissStep         = 0.2
	weightDampingThreshold = 3.0
)

// AdjustWeight returns the updated global factor weight after one
// prediction outcome. A hit grows the weight by 0.1, damped once the
// weight reaches 3.0 so it slows toward the ceiling; a miss shrinks it by
// 0.2 scaled by penaltyFactor (the same under-filled-window damping used
// for confidence; values <= 0 mean no damping). The result is clamped to
// [0.2, 5.0] and rounded to two decimals.
func AdjustWeight(current float64, hit bool, penaltyFactor float64) float64 {
	if penaltyFactor <= 0 {
		penaltyFactor = 1.0
	}

	var delta float64
	if hit {
		delta = weightHitStep
		if current >= weightDampingThreshold {
			delta = weightHitStep * (1.0 - current/models.MaxScale)
		}
	} else {
		delta = -weightMissStep * penaltyFactor
	}

	return roundScale(models.ClampScale(current + delta))
}
