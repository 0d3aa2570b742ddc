// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

// EntityKind identifies the table an entity belongs to.
type EntityKind string

// Entity kinds. Players, locations and games are open-ended and keyed by
// generated ids; bucket kinds use deterministic ids (e.g. "weekday_3",
// "timeslot_5", "count_4", "mode_coop") so resolution is a direct key lookup.
const (
	KindPlayer      EntityKind = "player"
	KindLocation    EntityKind = "location"
	KindGame        EntityKind = "game"
	KindWeekday     EntityKind = "weekday"
	KindTimeSlot    EntityKind = "timeSlot"
	KindPlayerCount EntityKind = "playerCount"
	KindGameMode    EntityKind = "gameMode"
	KindColor       EntityKind = "color"
	KindSession     EntityKind = "session"
)

// Kinds lists every entity kind, in a stable order.
var Kinds = []EntityKind{
	KindPlayer,
	KindLocation,
	KindGame,
	KindWeekday,
	KindTimeSlot,
	KindPlayerCount,
	KindGameMode,
	KindColor,
	KindSession,
}

// Relation kinds: the named association categories an entity can hold.
const (
	RelationPlayers      = "players"
	RelationLocations    = "locations"
	RelationColors       = "colors"
	RelationPlayerCounts = "playerCounts"
	RelationWeekdays     = "weekdays"
	RelationTimeSlots    = "timeSlots"
	RelationGameModes    = "gameModes"
)

// RecentSessionID is the fixed id of the singleton recent-session
// pseudo-entity acting as short-term memory.
const RecentSessionID = "recent_session"

// Scalar bounds shared by confidence values and factor weights.
const (
	MinScale = 0.2
	MaxScale = 5.0
)

// DefaultScale is the confidence and factor weight applied when no value
// has been learned yet.
const DefaultScale = 1.0

// ClampScale forces v into [MinScale, MaxScale].
func ClampScale(v float64) float64 {
	if v < MinScale {
		return MinScale
	}
	if v > MaxScale {
		return MaxScale
	}
	return v
}

// RankedEntry is one (candidate id, reinforcement count) pair of a
// ranked list.
type RankedEntry struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// RankedList is an ordered sequence of ranked entries, most relevant first.
type RankedList []RankedEntry

// UnmarshalJSON accepts both the canonical ordered-array shape and the
// legacy id->count map shape. Legacy maps are normalized into a
// descending-by-count list (ties broken by id for determinism). This
// normalization never fails for either recognized shape.
func (l *RankedList) UnmarshalJSON(data []byte) error {
	var entries []RankedEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		*l = entries
		return nil
	}

	var legacy map[string]int
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("ranked list: unrecognized shape: %w", err)
	}

	*l = NormalizeLegacyRelation(legacy)
	return nil
}

// NormalizeLegacyRelation converts a legacy id->count map into the
// canonical ordered shape, descending by count with id tie-breaks.
func NormalizeLegacyRelation(counts map[string]int) RankedList {
	list := make(RankedList, 0, len(counts))
	for id, count := range counts {
		list = append(list, RankedEntry{ID: id, Count: count})
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// Clone returns an independent copy of the list.
func (l RankedList) Clone() RankedList {
	if l == nil {
		return nil
	}
	out := make(RankedList, len(l))
	copy(out, l)
	return out
}

// IDs returns the candidate ids in rank order.
func (l RankedList) IDs() []string {
	ids := make([]string, len(l))
	for i, e := range l {
		ids[i] = e.ID
	}
	return ids
}

// EntityMeta holds the learned state attached to an entity.
type EntityMeta struct {
	// Relations maps a relation kind to its ranked list.
	Relations map[string]RankedList `json:"relations,omitempty"`

	// Confidence maps a relation kind to this entity's predictive
	// reliability for that relation, bounded to [MinScale, MaxScale].
	Confidence map[string]float64 `json:"confidence,omitempty"`
}

// Entity is a stored candidate.
type Entity struct {
	ID         string     `json:"id"`
	Kind       EntityKind `json:"kind"`
	Name       string     `json:"name"`
	ExternalID string     `json:"externalId,omitempty"`
	LastUsed   time.Time  `json:"lastUsed"`
	UsageCount int        `json:"usageCount"`
	Meta       EntityMeta `json:"meta"`
}

// Relation returns the ranked list for the given relation kind, or nil if
// none has been learned yet.
func (e *Entity) Relation(kind string) RankedList {
	if e.Meta.Relations == nil {
		return nil
	}
	return e.Meta.Relations[kind]
}

// SetRelation replaces the ranked list for the given relation kind.
func (e *Entity) SetRelation(kind string, list RankedList) {
	if e.Meta.Relations == nil {
		e.Meta.Relations = make(map[string]RankedList)
	}
	e.Meta.Relations[kind] = list
}

// ConfidenceFor returns the stored confidence for the relation kind,
// defaulting to DefaultScale when absent.
func (e *Entity) ConfidenceFor(kind string) float64 {
	if e.Meta.Confidence == nil {
		return DefaultScale
	}
	c, ok := e.Meta.Confidence[kind]
	if !ok {
		return DefaultScale
	}
	return ClampScale(c)
}

// SetConfidence stores the confidence for the relation kind, clamped to
// the valid range.
func (e *Entity) SetConfidence(kind string, c float64) {
	if e.Meta.Confidence == nil {
		e.Meta.Confidence = make(map[string]float64)
	}
	e.Meta.Confidence[kind] = ClampScale(c)
}

// Touch records a usage of the entity at the given time.
func (e *Entity) Touch(at time.Time) {
	e.UsageCount++
	if at.After(e.LastUsed) {
		e.LastUsed = at
	}
}

// Bucket id helpers. Bucket entities are keyed deterministically so the
// resolver can fetch them without a secondary index.

// WeekdayBucketID returns the weekday bucket id for t (0=Sunday .. 6).
func WeekdayBucketID(t time.Time) string {
	return fmt.Sprintf("weekday_%d", int(t.Weekday()))
}

// TimeSlotBucketID returns the 3-hour time-slot bucket id for t (0..7).
func TimeSlotBucketID(t time.Time) string {
	return fmt.Sprintf("timeslot_%d", t.Hour()/3)
}

// PlayerCountBucketID returns the player-count bucket id for n.
func PlayerCountBucketID(n int) string {
	return fmt.Sprintf("count_%d", n)
}

// GameModeBucketID returns the scoring-mode bucket id for the mode name.
func GameModeBucketID(mode string) string {
	return "mode_" + mode
}

// PlayerCountFromBucketID decodes a "count_N" id back into N. It returns
// false for ids that do not carry a valid count.
func PlayerCountFromBucketID(id string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(id, "count_%d", &n); err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
