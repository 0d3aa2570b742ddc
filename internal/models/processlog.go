// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package models

import "time"

// ProcessStatus is the training state of a session record.
type ProcessStatus string

const (
	// StatusProcessed marks a record whose every dimension has been
	// trained.
	StatusProcessed ProcessStatus = "processed"

	// StatusMissingLocation marks a record trained without a location; a
	// later location-only pass can complete it.
	StatusMissingLocation ProcessStatus = "missing-location"
)

// ProcessContext records the entity ids a training pass resolved, so a
// later location-only pass can cross-link the location against the same
// dimensions without re-resolving or re-counting them.
type ProcessContext struct {
	GameID     string   `json:"gameId,omitempty"`
	PlayerIDs  []string `json:"playerIds,omitempty"`
	LocationID string   `json:"locationId,omitempty"`
	WeekdayID  string   `json:"weekdayId,omitempty"`
	TimeSlotID string   `json:"timeSlotId,omitempty"`
	CountID    string   `json:"countId,omitempty"`
	ModeID     string   `json:"modeId,omitempty"`
}

// ProcessLog is the idempotency record for one finalized session. It is
// consulted purely for skip logic and never read for scoring.
type ProcessLog struct {
	RecordID    string         `json:"recordId"`
	Status      ProcessStatus  `json:"status"`
	ProcessedAt time.Time      `json:"processedAt"`
	Context     ProcessContext `json:"context"`
}
