// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/ludolog/internal/config"
	"github.com/tomtom215/ludolog/internal/logging"
	"github.com/tomtom215/ludolog/internal/models"
	"github.com/tomtom215/ludolog/internal/recommend/algorithms"
	"github.com/tomtom215/ludolog/internal/storage"
)

// Engine coordinates training and suggestions over the entity store. It
// is safe for concurrent use; training operations serialize on an
// internal writer lock.
type Engine struct {
	store   *storage.Store
	cfg     config.EngineConfig
	windows *algorithms.WindowPolicy
	logger  zerolog.Logger

	// trainMu makes the engine a single logical writer: no two training
	// operations may interleave against the same entities.
	trainMu sync.Mutex
}

// NewEngine creates an engine over the given store.
func NewEngine(store *storage.Store, cfg config.EngineConfig) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("recommend: store must not be nil")
	}

	dynamic := make(map[string]algorithms.DynamicWindow, len(cfg.Windows.Dynamic))
	for kind, d := range cfg.Windows.Dynamic {
		dynamic[kind] = algorithms.DynamicWindow{Ratio: d.Ratio, Cap: d.Cap}
	}
	fallback := algorithms.DynamicWindow{
		Ratio: cfg.Windows.FallbackRatio,
		Cap:   cfg.Windows.FallbackCap,
	}

	return &Engine{
		store:   store,
		cfg:     cfg,
		windows: algorithms.NewWindowPolicy(cfg.Windows.Fixed, dynamic, fallback),
		logger:  logging.Component("recommend"),
	}, nil
}

// GetWeights returns the persisted weight configuration for a
// recommendation domain.
func (e *Engine) GetWeights(domain string) (models.Weights, error) {
	if !validDomain(domain) {
		return nil, fmt.Errorf("unknown recommendation domain %q", domain)
	}
	return e.store.GetWeights(domain)
}

// SaveWeights persists a weight configuration for a recommendation
// domain. Values outside [0.2, 5.0] are silently clamped.
func (e *Engine) SaveWeights(domain string, w models.Weights) error {
	if !validDomain(domain) {
		return fmt.Errorf("unknown recommendation domain %q", domain)
	}
	if err := e.store.PutWeights(domain, w); err != nil {
		return fmt.Errorf("save weights %s: %w", domain, err)
	}
	e.logger.Info().Str("domain", domain).Msg("weights saved")
	return nil
}

// ResetModel clears all learned state: entities, relations, confidence,
// weights, and the processing log.
func (e *Engine) ResetModel() error {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	if err := e.store.Reset(); err != nil {
		return fmt.Errorf("reset model: %w", err)
	}
	e.logger.Info().Msg("model reset")
	return nil
}

// validDomain reports whether domain names a known recommendation domain.
func validDomain(domain string) bool {
	for _, d := range models.Domains {
		if d == domain {
			return true
		}
	}
	return false
}

// windowFor computes the prediction-window size for a relation kind using
// the current candidate pool in storage.
func (e *Engine) windowFor(relationKind string, poolKind models.EntityKind) int {
	pool, err := e.store.CountEntities(poolKind)
	if err != nil {
		e.logger.Warn().Err(err).Str("kind", string(poolKind)).Msg("count entities failed, using pool 0")
		pool = 0
	}
	return e.windows.Size(relationKind, pool)
}

// relationPoolKind maps a relation kind to the entity kind populating it.
func relationPoolKind(relationKind string) models.EntityKind {
	switch relationKind {
	case models.RelationPlayers:
		return models.KindPlayer
	case models.RelationLocations:
		return models.KindLocation
	case models.RelationPlayerCounts:
		return models.KindPlayerCount
	case models.RelationWeekdays:
		return models.KindWeekday
	case models.RelationTimeSlots:
		return models.KindTimeSlot
	case models.RelationGameModes:
		return models.KindGameMode
	case models.RelationColors:
		return models.KindColor
	default:
		return models.KindGame
	}
}
