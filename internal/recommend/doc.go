// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

// Package recommend implements the adaptive relationship-learning and
// recommendation engine.
//
// The Engine is the single entry point. Training intake
// (RecordSessionCompletion, ReprocessAllHistory) runs under an exclusive
// writer lock and a single storage transaction per unit of work, making
// retries safe: the processing log turns re-submission of an already
// processed record into a no-op. Suggestion calls (SuggestPlayers,
// SuggestCounts, SuggestLocations, SuggestColors) are read-only and may
// run concurrently with each other.
//
// The engine owns no algorithmic state of its own; everything learned
// lives on entities and weight configurations in the storage layer, and
// all numeric work is delegated to the pure kernels in the algorithms
// subpackage.
package recommend
