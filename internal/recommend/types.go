// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import "time"

// SituationContext describes the situation a suggestion or training pass
// happens in. Every field is optional; empty fields simply contribute no
// voter.
type SituationContext struct {
	// GameExternalID resolves the game entity by external reference,
	// taking precedence over GameName.
	GameExternalID string

	// GameName resolves the game entity by display name.
	GameName string

	// LocationID resolves the location entity directly.
	LocationID string

	// LocationName resolves the location entity by display name.
	LocationName string

	// PlayerCount selects the player-count bucket when > 0.
	PlayerCount int

	// Mode selects the scoring-mode bucket when non-empty.
	Mode string

	// Timestamp derives the weekday and 3-hour time-slot buckets when
	// non-zero.
	Timestamp time.Time

	// PlayerIDs are already-known player entity ids, used as additional
	// voters for location suggestions and as the seed of chained player
	// selection.
	PlayerIDs []string
}

// Suggestion is one ranked candidate returned by a suggestion engine.
type Suggestion struct {
	ID    string  `json:"id"`
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`
}

// PlayerSuggestion extends Suggestion with the player's learned color
// preference.
type PlayerSuggestion struct {
	Suggestion

	// Color is the player's top learned color, if any.
	Color string `json:"color,omitempty"`
}

// CountSuggestion is a decoded player-count candidate.
type CountSuggestion struct {
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

// ColorAssignment pairs a player with the color the coordinator assigned.
type ColorAssignment struct {
	PlayerID string `json:"playerId"`
	Color    string `json:"color"`
}

// ProgressFunc receives batch reprocessing progress in percent (0-100).
type ProgressFunc func(percent int)

// TransparentColor is the sentinel color value always filtered from color
// suggestions.
const TransparentColor = "transparent"
