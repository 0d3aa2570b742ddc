// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package algorithms

import (
	"math"

	"github.com/tomtom215/ludolog/internal/models"
)

// DynamicWindow sizes a prediction window proportionally to the candidate
// pool: N = clamp(ceil(poolSize*Ratio), 1, Cap). Used for long-tail
// relation kinds (players, locations, games).
type DynamicWindow struct {
	Ratio float64
	Cap   int
}

// Size computes the window for the given pool size.
func (d DynamicWindow) Size(poolSize int) int {
	if poolSize < 1 {
		return 1
	}
	n := int(math.Ceil(float64(poolSize) * d.Ratio))
	if n < 1 {
		n = 1
	}
	if d.Cap > 0 && n > d.Cap {
		n = d.Cap
	}
	return n
}

// WindowPolicy maps a relation kind to its prediction-window size. Small,
// low-cardinality kinds use a fixed N regardless of pool size; long-tail
// kinds scale with the pool. Unrecognized kinds fall back to a generic
// dynamic default rather than failing.
type WindowPolicy struct {
	fixed    map[string]int
	dynamic  map[string]DynamicWindow
	fallback DynamicWindow
}

// NewWindowPolicy builds a policy from explicit tables. Nil maps are
// treated as empty; a zero fallback gets the generic default.
func NewWindowPolicy(fixed map[string]int, dynamic map[string]DynamicWindow, fallback DynamicWindow) *WindowPolicy {
	if fixed == nil {
		fixed = map[string]int{}
	}
	if dynamic == nil {
		dynamic = map[string]DynamicWindow{}
	}
	if fallback.Ratio <= 0 {
		fallback = DynamicWindow{Ratio: 0.5, Cap: 5}
	}
	return &WindowPolicy{fixed: fixed, dynamic: dynamic, fallback: fallback}
}

// DefaultWindowPolicy returns the policy used when no configuration
// overrides are present.
func DefaultWindowPolicy() *WindowPolicy {
	return NewWindowPolicy(
		map[string]int{
			models.RelationPlayerCounts: 3,
			models.RelationWeekdays:     3,
			models.RelationTimeSlots:    3,
			models.RelationGameModes:    2,
			models.RelationColors:       4,
		},
		map[string]DynamicWindow{
			models.RelationPlayers:   {Ratio: 0.4, Cap: 10},
			models.RelationLocations: {Ratio: 0.5, Cap: 5},
			"games":                  {Ratio: 0.4, Cap: 8},
		},
		DynamicWindow{Ratio: 0.5, Cap: 5},
	)
}

// Size returns the prediction-window size for the relation kind given the
// current candidate pool size.
func (p *WindowPolicy) Size(relationKind string, poolSize int) int {
	if n, ok := p.fixed[relationKind]; ok && n > 0 {
		return n
	}
	if d, ok := p.dynamic[relationKind]; ok {
		return d.Size(poolSize)
	}
	return p.fallback.Size(poolSize)
}
