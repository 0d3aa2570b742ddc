// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/ludolog/internal/models"
	"github.com/tomtom215/ludolog/internal/recommend/algorithms"
	"github.com/tomtom215/ludolog/internal/storage"
)

// contextVoters resolves a situational context into at most one voter per
// dimension. Missing or unknown dimensions contribute no voter and are
// never an error; voters are deduplicated by entity id.
func (e *Engine) contextVoters(sctx SituationContext) ([]algorithms.Voter, error) {
	var voters []algorithms.Voter
	seen := make(map[string]struct{})

	add := func(entity *models.Entity, factor string, confOverride float64) {
		if entity == nil {
			return
		}
		if _, dup := seen[entity.ID]; dup {
			return
		}
		seen[entity.ID] = struct{}{}
		voters = append(voters, algorithms.Voter{
			Entity:             entity,
			Factor:             factor,
			ConfidenceOverride: confOverride,
		})
	}

	game, err := e.lookupGame(sctx)
	if err != nil {
		return nil, err
	}
	add(game, models.FactorGame, 0)

	loc, err := e.lookupLocation(sctx)
	if err != nil {
		return nil, err
	}
	add(loc, models.FactorLocation, 0)

	if !sctx.Timestamp.IsZero() {
		wd, err := e.lookupByID(models.KindWeekday, models.WeekdayBucketID(sctx.Timestamp))
		if err != nil {
			return nil, err
		}
		add(wd, models.FactorWeekday, 0)

		slot, err := e.lookupByID(models.KindTimeSlot, models.TimeSlotBucketID(sctx.Timestamp))
		if err != nil {
			return nil, err
		}
		add(slot, models.FactorTimeSlot, 0)
	}

	if sctx.PlayerCount > 0 {
		cnt, err := e.lookupByID(models.KindPlayerCount, models.PlayerCountBucketID(sctx.PlayerCount))
		if err != nil {
			return nil, err
		}
		add(cnt, models.FactorPlayerCount, 0)
	}

	if sctx.Mode != "" {
		mode, err := e.lookupByID(models.KindGameMode, models.GameModeBucketID(storage.NormalizeName(sctx.Mode)))
		if err != nil {
			return nil, err
		}
		add(mode, models.FactorGameMode, 0)
	}

	// The recent-session pseudo-entity is short-term memory and always
	// votes at full confidence.
	session, err := e.lookupByID(models.KindSession, models.RecentSessionID)
	if err != nil {
		return nil, err
	}
	add(session, models.FactorSessionContext, models.MaxScale)

	return voters, nil
}

// playerVoters turns known player ids into player-factor voters, for
// chained prediction and location scoring. Unknown ids are skipped.
func (e *Engine) playerVoters(ids []string, factor string) ([]algorithms.Voter, error) {
	voters := make([]algorithms.Voter, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		p, err := e.lookupByID(models.KindPlayer, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		voters = append(voters, algorithms.Voter{Entity: p, Factor: factor})
	}
	return voters, nil
}

// lookupGame resolves the game entity by external id first, then by name.
func (e *Engine) lookupGame(sctx SituationContext) (*models.Entity, error) {
	if sctx.GameExternalID != "" {
		g, err := e.store.GetEntityByExternalID(models.KindGame, sctx.GameExternalID)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("lookup game by external id: %w", err)
		}
	}
	if sctx.GameName != "" {
		g, err := e.store.GetEntityByName(models.KindGame, sctx.GameName)
		if err == nil {
			return g, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("lookup game by name: %w", err)
		}
	}
	return nil, nil
}

// lookupLocation resolves the location entity by id first, then by name.
func (e *Engine) lookupLocation(sctx SituationContext) (*models.Entity, error) {
	if sctx.LocationID != "" {
		l, err := e.lookupByID(models.KindLocation, sctx.LocationID)
		if err != nil || l != nil {
			return l, err
		}
	}
	if sctx.LocationName != "" {
		l, err := e.store.GetEntityByName(models.KindLocation, sctx.LocationName)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("lookup location by name: %w", err)
		}
	}
	return nil, nil
}

// lookupByID fetches an entity, mapping "not found" to a nil entity.
func (e *Engine) lookupByID(kind models.EntityKind, id string) (*models.Entity, error) {
	entity, err := e.store.GetEntity(kind, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s/%s: %w", kind, id, err)
	}
	return entity, nil
}

// templateVoter builds the synthetic template-settings voter for color
// suggestions: a never-persisted entity whose colors relation encodes the
// caller-declared order (not real usage counts), voting at full
// confidence so template ordering dominates.
func templateVoter(colorOrder []string) (algorithms.Voter, bool) {
	if len(colorOrder) == 0 {
		return algorithms.Voter{}, false
	}

	list := make(models.RankedList, 0, len(colorOrder))
	for i, color := range colorOrder {
		c := storage.NormalizeName(color)
		if c == "" {
			continue
		}
		list = append(list, models.RankedEntry{ID: c, Count: len(colorOrder) - i})
	}
	if len(list) == 0 {
		return algorithms.Voter{}, false
	}

	entity := &models.Entity{
		ID:   "template_settings",
		Kind: models.KindSession,
		Name: "template settings",
	}
	entity.SetRelation(models.RelationColors, list)

	return algorithms.Voter{
		Entity:             entity,
		Factor:             models.FactorTemplateSetting,
		ConfidenceOverride: models.MaxScale,
	}, true
}
