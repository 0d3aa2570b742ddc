// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package models

// Situational factors. Each voter in a scoring pass is tagged with the
// factor describing its role; factor weights are global per-factor scalars
// shared across all entities.
const (
	FactorGame            = "game"
	FactorLocation        = "location"
	FactorWeekday         = "weekday"
	FactorTimeSlot        = "timeSlot"
	FactorPlayerCount     = "playerCount"
	FactorGameMode        = "gameMode"
	FactorRelatedPlayer   = "relatedPlayer"
	FactorSessionContext  = "sessionContext"
	FactorTemplateSetting = "templateSetting"
	FactorPlayer          = "player"
)

// Recommendation domains. One weight configuration is persisted per domain.
const (
	DomainPlayers      = "players"
	DomainPlayerCounts = "playerCounts"
	DomainLocations    = "locations"
	DomainColors       = "colors"
)

// Domains lists every recommendation domain.
var Domains = []string{DomainPlayers, DomainPlayerCounts, DomainLocations, DomainColors}

// Weights is a global per-factor weight configuration for one
// recommendation domain. Absent factors weigh DefaultScale.
type Weights map[string]float64

// Get returns the weight for a factor, defaulting to DefaultScale and
// clamping stored values into the valid range.
func (w Weights) Get(factor string) float64 {
	if w == nil {
		return DefaultScale
	}
	v, ok := w[factor]
	if !ok {
		return DefaultScale
	}
	return ClampScale(v)
}

// Set stores the weight for a factor, clamped to the valid range.
func (w Weights) Set(factor string, v float64) {
	w[factor] = ClampScale(v)
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// Clamped returns a copy with every value forced into [MinScale, MaxScale].
func (w Weights) Clamped() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = ClampScale(v)
	}
	return out
}
