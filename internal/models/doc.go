// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

// Package models defines the persistent data model for the adaptive
// relationship-learning engine.
//
// The central type is Entity: a stored candidate (player, location, game,
// weekday/time-slot/player-count/scoring-mode bucket, color, or the
// recent-session pseudo-entity). Each entity carries a meta block with
// ranked association lists per relation kind and a per-relation confidence
// scalar.
//
// # Ranked Lists
//
// A ranked list is an ordered (id, count) sequence. Order encodes the
// output of the rank-promotion algorithm, NOT a sort by count: a lower-count
// entry can legitimately rank above a higher-count one after repeated
// reinforcement. Legacy stores persisted relations as a plain id->count map;
// RankedList's unmarshaler normalizes that shape into a descending-by-count
// ordered list so core algorithms never see it.
//
// # Scalars
//
// Confidence values and global factor weights are bounded to [0.2, 5.0].
// Out-of-range values are silently corrected at the boundary rather than
// reported.
package models
