// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package models

import "time"

// PlayerResult is one player's line in a finalized session record.
type PlayerResult struct {
	// ID is the caller's identifier for the player within the record.
	ID string `json:"id"`

	// Name is the display name used for resolve-or-create matching.
	Name string `json:"name"`

	// EntityID optionally links the result to an already-known player
	// entity; it takes precedence over name matching.
	EntityID string `json:"entityId,omitempty"`

	Score   float64 `json:"score"`
	Color   string  `json:"color,omitempty"`
	Starter bool    `json:"starter,omitempty"`
}

// SessionRecord is a finalized board-game session as delivered by the
// caller. It is the sole input to the training pipeline.
type SessionRecord struct {
	ID             string         `json:"id"`
	GameName       string         `json:"gameName"`
	GameExternalID string         `json:"gameExternalId,omitempty"`
	Mode           string         `json:"mode,omitempty"`
	StartedAt      time.Time      `json:"startedAt"`
	EndedAt        time.Time      `json:"endedAt"`
	LocationID     string         `json:"locationId,omitempty"`
	LocationName   string         `json:"locationName,omitempty"`
	Players        []PlayerResult `json:"players"`
	WinnerIDs      []string       `json:"winnerIds,omitempty"`
}

// ValidPlayers returns the players carrying at least a name or a linked
// entity id. Empty lines never become voters or entities.
func (r *SessionRecord) ValidPlayers() []PlayerResult {
	valid := make([]PlayerResult, 0, len(r.Players))
	for _, p := range r.Players {
		if p.Name == "" && p.EntityID == "" {
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

// HasLocation reports whether the record names a location.
func (r *SessionRecord) HasLocation() bool {
	return r.LocationName != "" || r.LocationID != ""
}
