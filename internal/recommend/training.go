// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/ludolog/internal/metrics"
	"github.com/tomtom215/ludolog/internal/models"
	"github.com/tomtom215/ludolog/internal/recommend/algorithms"
	"github.com/tomtom215/ludolog/internal/storage"
)

// trainedRelations fixes the relation-kind update order so training is
// deterministic for a given input.
var trainedRelations = []string{
	models.RelationPlayers,
	models.RelationLocations,
	models.RelationColors,
	models.RelationPlayerCounts,
	models.RelationWeekdays,
	models.RelationTimeSlots,
	models.RelationGameModes,
}

// trainingMode is the processing decision for one record against the log.
type trainingMode int

const (
	modeSkip trainingMode = iota
	modeFull
	modeLocationOnly
)

// resolveIndex is the in-memory identity index training runs against.
// Resolution order is preferred id, then external id, then name; misses
// create a new entity in the index. The index never talks to storage, so
// the same code serves both the transactional single-record path (seeded
// from targeted reads) and the batch path (seeded from a full kind scan).
type resolveIndex struct {
	byKey  map[string]*models.Entity
	byName map[string]string
	byExt  map[string]string

	// counts tracks the candidate pool per kind for dynamic prediction
	// windows, including entities created during this run.
	counts map[models.EntityKind]int

	dirty map[string]*models.Entity
}

func newResolveIndex() *resolveIndex {
	return &resolveIndex{
		byKey:  make(map[string]*models.Entity),
		byName: make(map[string]string),
		byExt:  make(map[string]string),
		counts: make(map[models.EntityKind]int),
		dirty:  make(map[string]*models.Entity),
	}
}

func indexKey(kind models.EntityKind, id string) string {
	return string(kind) + ":" + id
}

// insert adds an already-stored entity to the index without marking it
// dirty. Nil entities are ignored.
func (idx *resolveIndex) insert(e *models.Entity) {
	if e == nil {
		return
	}
	key := indexKey(e.Kind, e.ID)
	if _, dup := idx.byKey[key]; dup {
		return
	}
	idx.byKey[key] = e
	if n := storage.NormalizeName(e.Name); n != "" {
		idx.byName[indexKey(e.Kind, n)] = e.ID
	}
	if e.ExternalID != "" {
		idx.byExt[indexKey(e.Kind, e.ExternalID)] = e.ID
	}
}

// get returns an indexed entity or nil.
func (idx *resolveIndex) get(kind models.EntityKind, id string) *models.Entity {
	if id == "" {
		return nil
	}
	return idx.byKey[indexKey(kind, id)]
}

// markDirty records an entity as modified so the caller writes it back.
func (idx *resolveIndex) markDirty(e *models.Entity) {
	idx.dirty[indexKey(e.Kind, e.ID)] = e
}

// resolveOrCreate finds an entity by preferred id, external id, or name,
// creating it in the index when all lookups miss. The second return
// reports creation.
func (idx *resolveIndex) resolveOrCreate(kind models.EntityKind, preferredID, externalID, name string) (*models.Entity, bool) {
	if e := idx.get(kind, preferredID); e != nil {
		return e, false
	}
	if externalID != "" {
		if id, ok := idx.byExt[indexKey(kind, externalID)]; ok {
			return idx.byKey[indexKey(kind, id)], false
		}
	}
	if n := storage.NormalizeName(name); n != "" {
		if id, ok := idx.byName[indexKey(kind, n)]; ok {
			return idx.byKey[indexKey(kind, id)], false
		}
	}
	if preferredID == "" && externalID == "" && storage.NormalizeName(name) == "" {
		return nil, false
	}

	id := preferredID
	if id == "" {
		id = uuid.NewString()
	}
	e := &models.Entity{
		ID:         id,
		Kind:       kind,
		Name:       name,
		ExternalID: externalID,
	}
	idx.insert(e)
	idx.markDirty(e)
	idx.counts[kind]++
	metrics.EntitiesCreated.WithLabelValues(string(kind)).Inc()
	return e, true
}

// weightSet holds per-domain weight configurations during one training
// run, tracking which domains changed.
type weightSet struct {
	byDomain map[string]models.Weights
	dirty    map[string]struct{}
}

func newWeightSet() *weightSet {
	return &weightSet{
		byDomain: make(map[string]models.Weights),
		dirty:    make(map[string]struct{}),
	}
}

// set seeds a loaded configuration.
func (ws *weightSet) set(domain string, w models.Weights) {
	if w == nil {
		w = models.Weights{}
	}
	ws.byDomain[domain] = w
}

// get returns the configuration for a domain, creating an empty one when
// none was loaded.
func (ws *weightSet) get(domain string) models.Weights {
	w, ok := ws.byDomain[domain]
	if !ok {
		w = models.Weights{}
		ws.byDomain[domain] = w
	}
	return w
}

func (ws *weightSet) markDirty(domain string) {
	ws.dirty[domain] = struct{}{}
}

// weightDomain maps a relation kind to the recommendation domain whose
// weights its predictions grade. Relation kinds without a suggestion
// domain carry no weight configuration.
func weightDomain(relationKind string) (string, bool) {
	switch relationKind {
	case models.RelationPlayers:
		return models.DomainPlayers, true
	case models.RelationPlayerCounts:
		return models.DomainPlayerCounts, true
	case models.RelationLocations:
		return models.DomainLocations, true
	case models.RelationColors:
		return models.DomainColors, true
	}
	return "", false
}

// eventEntities is the resolved entity set of one session record.
type eventEntities struct {
	game     *models.Entity
	players  []*models.Entity
	location *models.Entity
	weekday  *models.Entity
	timeSlot *models.Entity
	count    *models.Entity
	mode     *models.Entity
	session  *models.Entity

	// colorByPlayer maps a player entity id to the normalized color that
	// player used, transparent excluded.
	colorByPlayer map[string]string

	// colors lists all distinct colors used in the event, in player order.
	colors []string
}

// sourceVoter pairs a training source with its situational factor tag.
type sourceVoter struct {
	entity *models.Entity
	factor string
}

// sources lists the event's training sources in a fixed order.
func (ev *eventEntities) sources() []sourceVoter {
	out := make([]sourceVoter, 0, len(ev.players)+7)
	if ev.game != nil {
		out = append(out, sourceVoter{ev.game, models.FactorGame})
	}
	for _, p := range ev.players {
		out = append(out, sourceVoter{p, models.FactorRelatedPlayer})
	}
	if ev.location != nil {
		out = append(out, sourceVoter{ev.location, models.FactorLocation})
	}
	if ev.weekday != nil {
		out = append(out, sourceVoter{ev.weekday, models.FactorWeekday})
	}
	if ev.timeSlot != nil {
		out = append(out, sourceVoter{ev.timeSlot, models.FactorTimeSlot})
	}
	if ev.count != nil {
		out = append(out, sourceVoter{ev.count, models.FactorPlayerCount})
	}
	if ev.mode != nil {
		out = append(out, sourceVoter{ev.mode, models.FactorGameMode})
	}
	if ev.session != nil {
		out = append(out, sourceVoter{ev.session, models.FactorSessionContext})
	}
	return out
}

// groups builds the active-id set per relation kind for this event.
func (ev *eventEntities) groups() map[string][]string {
	g := make(map[string][]string, len(trainedRelations))
	for _, p := range ev.players {
		g[models.RelationPlayers] = append(g[models.RelationPlayers], p.ID)
	}
	if ev.location != nil {
		g[models.RelationLocations] = []string{ev.location.ID}
	}
	if len(ev.colors) > 0 {
		g[models.RelationColors] = ev.colors
	}
	if ev.count != nil {
		g[models.RelationPlayerCounts] = []string{ev.count.ID}
	}
	if ev.weekday != nil {
		g[models.RelationWeekdays] = []string{ev.weekday.ID}
	}
	if ev.timeSlot != nil {
		g[models.RelationTimeSlots] = []string{ev.timeSlot.ID}
	}
	if ev.mode != nil {
		g[models.RelationGameModes] = []string{ev.mode.ID}
	}
	return g
}

// resolveEvent resolves or creates every entity a record touches, purely
// against the index.
func resolveEvent(idx *resolveIndex, record *models.SessionRecord) *eventEntities {
	ev := &eventEntities{colorByPlayer: make(map[string]string)}

	ev.game, _ = idx.resolveOrCreate(models.KindGame, "", record.GameExternalID, record.GameName)

	seenColors := make(map[string]struct{})
	valid := record.ValidPlayers()
	for _, pr := range valid {
		p, _ := idx.resolveOrCreate(models.KindPlayer, pr.EntityID, "", pr.Name)
		if p == nil {
			continue
		}
		ev.players = append(ev.players, p)

		color := storage.NormalizeName(pr.Color)
		if color == "" || color == TransparentColor {
			continue
		}
		ev.colorByPlayer[p.ID] = color
		if _, dup := seenColors[color]; !dup {
			seenColors[color] = struct{}{}
			ev.colors = append(ev.colors, color)
			idx.resolveOrCreate(models.KindColor, color, "", color)
		}
	}

	if record.HasLocation() {
		ev.location, _ = idx.resolveOrCreate(models.KindLocation, record.LocationID, "", record.LocationName)
	}

	if at := eventTime(record); !at.IsZero() {
		ev.weekday, _ = idx.resolveOrCreate(models.KindWeekday,
			models.WeekdayBucketID(at), "", at.Weekday().String())
		ev.timeSlot, _ = idx.resolveOrCreate(models.KindTimeSlot,
			models.TimeSlotBucketID(at), "", fmt.Sprintf("%02d:00-%02d:59", (at.Hour()/3)*3, (at.Hour()/3)*3+2))
	}

	if n := len(ev.players); n > 0 {
		ev.count, _ = idx.resolveOrCreate(models.KindPlayerCount,
			models.PlayerCountBucketID(n), "", fmt.Sprintf("%d players", n))
	}

	if record.Mode != "" {
		ev.mode, _ = idx.resolveOrCreate(models.KindGameMode,
			models.GameModeBucketID(storage.NormalizeName(record.Mode)), "", record.Mode)
	}

	ev.session, _ = idx.resolveOrCreate(models.KindSession, models.RecentSessionID, "", "recent session")

	return ev
}

// eventTime picks the timestamp buckets and usage bookkeeping run on.
func eventTime(record *models.SessionRecord) time.Time {
	if !record.StartedAt.IsZero() {
		return record.StartedAt
	}
	return record.EndedAt
}

// trainSource applies one relation update to one source: factor-weight
// grading and confidence adaptation against the pre-update list, then the
// halving-jump promotion. The source's own id never appears in its
// actives.
func (e *Engine) trainSource(idx *resolveIndex, source *models.Entity, factor, relationKind string, activeIDs []string, ws *weightSet) {
	actives := excludeID(activeIDs, source.ID)
	if len(actives) == 0 {
		return
	}

	list := source.Relation(relationKind)
	window := e.windows.Size(relationKind, idx.counts[relationPoolKind(relationKind)])
	if window < 1 {
		window = 1
	}

	// Cold-start lists grade nothing: with no prior prediction there is
	// no evidence for or against the factor.
	if domain, graded := weightDomain(relationKind); graded && len(list) > 0 {
		penalty := 1.0
		if len(list) <= window {
			penalty = float64(len(list)) / float64(window)
		}
		w := ws.get(domain)
		for _, id := range actives {
			hit := algorithms.TopWindowHit(list, id, window)
			w.Set(factor, algorithms.AdjustWeight(w.Get(factor), hit, penalty))
		}
		ws.markDirty(domain)
	}

	source.SetConfidence(relationKind,
		algorithms.AdjustConfidence(list, actives, source.ConfidenceFor(relationKind), window))
	source.SetRelation(relationKind,
		algorithms.UpdateRankedList(list, actives, e.cfg.MaxLengthFor(relationKind)))
	idx.markDirty(source)
}

// applyFullEvent runs the complete cross-linking pass: every resolved
// entity acts as a source and learns every relation group of the event.
// Player sources learn colors from their own color only; every other
// source learns all colors used.
func (e *Engine) applyFullEvent(idx *resolveIndex, ev *eventEntities, at time.Time, ws *weightSet) {
	groups := ev.groups()

	for _, src := range ev.sources() {
		for _, kind := range trainedRelations {
			actives := groups[kind]
			if kind == models.RelationColors && src.entity.Kind == models.KindPlayer {
				color, ok := ev.colorByPlayer[src.entity.ID]
				if !ok {
					continue
				}
				actives = []string{color}
			}
			e.trainSource(idx, src.entity, src.factor, kind, actives, ws)
		}
	}

	touch := func(entity *models.Entity) {
		if entity == nil {
			return
		}
		entity.Touch(at)
		idx.markDirty(entity)
	}
	touch(ev.game)
	for _, p := range ev.players {
		touch(p)
	}
	touch(ev.location)
}

// applyLocationRelink completes a record previously trained without a
// location: the location learns every dimension recorded in the original
// pass, and each of those dimensions learns the location. Player and game
// usage counts are not incremented again.
func (e *Engine) applyLocationRelink(idx *resolveIndex, loc *models.Entity, pctx models.ProcessContext, colors []string, at time.Time, ws *weightSet) {
	locGroups := map[string][]string{
		models.RelationPlayers:      pctx.PlayerIDs,
		models.RelationColors:       colors,
		models.RelationPlayerCounts: idList(pctx.CountID),
		models.RelationWeekdays:     idList(pctx.WeekdayID),
		models.RelationTimeSlots:    idList(pctx.TimeSlotID),
		models.RelationGameModes:    idList(pctx.ModeID),
	}
	for _, kind := range trainedRelations {
		e.trainSource(idx, loc, models.FactorLocation, kind, locGroups[kind], ws)
	}
	loc.Touch(at)
	idx.markDirty(loc)

	locActive := []string{loc.ID}
	relink := func(kind models.EntityKind, id, factor string) {
		entity := idx.get(kind, id)
		if entity == nil {
			return
		}
		e.trainSource(idx, entity, factor, models.RelationLocations, locActive, ws)
	}
	relink(models.KindGame, pctx.GameID, models.FactorGame)
	for _, pid := range pctx.PlayerIDs {
		relink(models.KindPlayer, pid, models.FactorRelatedPlayer)
	}
	relink(models.KindWeekday, pctx.WeekdayID, models.FactorWeekday)
	relink(models.KindTimeSlot, pctx.TimeSlotID, models.FactorTimeSlot)
	relink(models.KindPlayerCount, pctx.CountID, models.FactorPlayerCount)
	relink(models.KindGameMode, pctx.ModeID, models.FactorGameMode)
	relink(models.KindSession, models.RecentSessionID, models.FactorSessionContext)
}

// RecordSessionCompletion trains the model on one finalized session. It
// is idempotent: a record already fully processed is skipped, and one
// previously processed without a location gets a location-only completion
// pass. All mutations of a call commit atomically or not at all.
func (e *Engine) RecordSessionCompletion(record *models.SessionRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("record session: missing record id")
	}

	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.TrainingDuration.Observe(time.Since(start).Seconds())
	}()

	// Pool sizes feed the dynamic prediction windows. Reading them ahead
	// of the transaction is safe: the train lock is the only writer.
	counts, err := e.poolCounts()
	if err != nil {
		metrics.TrainingErrors.Inc()
		return fmt.Errorf("record session %s: %w", record.ID, err)
	}

	mode := modeSkip
	err = e.store.Update(func(tx *storage.Txn) error {
		var decideErr error
		mode, decideErr = decideMode(tx, record)
		if decideErr != nil {
			return decideErr
		}
		if mode == modeSkip {
			return nil
		}

		idx := newResolveIndex()
		for kind, n := range counts {
			idx.counts[kind] = n
		}
		ws := newWeightSet()
		if err := loadWeights(tx, ws); err != nil {
			return err
		}

		var logEntry *models.ProcessLog
		switch mode {
		case modeFull:
			if err := seedEventEntities(tx, idx, record); err != nil {
				return err
			}
			ev := resolveEvent(idx, record)
			e.applyFullEvent(idx, ev, eventTime(record), ws)
			logEntry = buildLog(record, ev)
		case modeLocationOnly:
			prev, err := tx.GetLog(record.ID)
			if err != nil {
				return err
			}
			if err := seedContextEntities(tx, idx, prev.Context); err != nil {
				return err
			}
			if err := seedLocation(tx, idx, record); err != nil {
				return err
			}
			loc, _ := idx.resolveOrCreate(models.KindLocation, record.LocationID, "", record.LocationName)
			if loc == nil {
				return fmt.Errorf("resolve location for record %s", record.ID)
			}
			e.applyLocationRelink(idx, loc, prev.Context, recordColors(record), eventTime(record), ws)
			prev.Status = models.StatusProcessed
			prev.ProcessedAt = time.Now().UTC()
			prev.Context.LocationID = loc.ID
			logEntry = prev
		}

		return writeBack(tx, idx, ws, []*models.ProcessLog{logEntry})
	})
	if err != nil {
		metrics.TrainingErrors.Inc()
		e.logger.Error().Err(err).Str("record", record.ID).Msg("training failed")
		return fmt.Errorf("record session %s: %w", record.ID, err)
	}

	if mode == modeSkip {
		metrics.SessionsSkipped.Inc()
		e.logger.Debug().Str("record", record.ID).Msg("record already processed, skipped")
		return nil
	}

	metrics.SessionsTrained.Inc()
	e.logger.Info().
		Str("record", record.ID).
		Bool("location_only", mode == modeLocationOnly).
		Msg("session trained")
	return nil
}

// decideMode reads the processing log and picks the training mode for a
// record.
func decideMode(tx *storage.Txn, record *models.SessionRecord) (trainingMode, error) {
	logEntry, err := tx.GetLog(record.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return modeFull, nil
	}
	if err != nil {
		return modeSkip, err
	}
	if logEntry.Status == models.StatusMissingLocation && record.HasLocation() {
		return modeLocationOnly, nil
	}
	return modeSkip, nil
}

// poolCounts reads the stored candidate pool sizes that feed dynamic
// prediction windows.
func (e *Engine) poolCounts() (map[models.EntityKind]int, error) {
	counts := make(map[models.EntityKind]int, 2)
	for _, kind := range []models.EntityKind{models.KindPlayer, models.KindLocation} {
		n, err := e.store.CountEntities(kind)
		if err != nil {
			return nil, fmt.Errorf("count %s pool: %w", kind, err)
		}
		counts[kind] = n
	}
	return counts, nil
}

// loadWeights seeds the weight set with every domain configuration.
func loadWeights(tx *storage.Txn, ws *weightSet) error {
	for _, domain := range models.Domains {
		w, err := tx.GetWeights(domain)
		if err != nil {
			return err
		}
		ws.set(domain, w)
	}
	return nil
}

// seedEventEntities preloads every stored entity a record may resolve to,
// so resolveEvent can run purely against the index.
func seedEventEntities(tx *storage.Txn, idx *resolveIndex, record *models.SessionRecord) error {
	seed := func(e *models.Entity, err error) error {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		idx.insert(e)
		return nil
	}

	if record.GameExternalID != "" {
		if err := seed(tx.GetEntityByExternalID(models.KindGame, record.GameExternalID)); err != nil {
			return err
		}
	}
	if record.GameName != "" {
		if err := seed(tx.GetEntityByName(models.KindGame, record.GameName)); err != nil {
			return err
		}
	}

	for _, pr := range record.ValidPlayers() {
		if pr.EntityID != "" {
			if err := seed(tx.GetEntity(models.KindPlayer, pr.EntityID)); err != nil {
				return err
			}
		}
		if pr.Name != "" {
			if err := seed(tx.GetEntityByName(models.KindPlayer, pr.Name)); err != nil {
				return err
			}
		}
		if color := storage.NormalizeName(pr.Color); color != "" && color != TransparentColor {
			if err := seed(tx.GetEntity(models.KindColor, color)); err != nil {
				return err
			}
		}
	}

	if err := seedLocation(tx, idx, record); err != nil {
		return err
	}

	if at := eventTime(record); !at.IsZero() {
		if err := seed(tx.GetEntity(models.KindWeekday, models.WeekdayBucketID(at))); err != nil {
			return err
		}
		if err := seed(tx.GetEntity(models.KindTimeSlot, models.TimeSlotBucketID(at))); err != nil {
			return err
		}
	}
	if n := len(record.ValidPlayers()); n > 0 {
		if err := seed(tx.GetEntity(models.KindPlayerCount, models.PlayerCountBucketID(n))); err != nil {
			return err
		}
	}
	if record.Mode != "" {
		id := models.GameModeBucketID(storage.NormalizeName(record.Mode))
		if err := seed(tx.GetEntity(models.KindGameMode, id)); err != nil {
			return err
		}
	}
	return seed(tx.GetEntity(models.KindSession, models.RecentSessionID))
}

// seedLocation preloads the record's location entity if stored.
func seedLocation(tx *storage.Txn, idx *resolveIndex, record *models.SessionRecord) error {
	if record.LocationID != "" {
		loc, err := tx.GetEntity(models.KindLocation, record.LocationID)
		if err == nil {
			idx.insert(loc)
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	if record.LocationName != "" {
		loc, err := tx.GetEntityByName(models.KindLocation, record.LocationName)
		if err == nil {
			idx.insert(loc)
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}
	return nil
}

// seedContextEntities preloads the entities a previous training pass
// recorded, for the location-only completion.
func seedContextEntities(tx *storage.Txn, idx *resolveIndex, pctx models.ProcessContext) error {
	seed := func(kind models.EntityKind, id string) error {
		if id == "" {
			return nil
		}
		e, err := tx.GetEntity(kind, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		idx.insert(e)
		return nil
	}

	if err := seed(models.KindGame, pctx.GameID); err != nil {
		return err
	}
	for _, pid := range pctx.PlayerIDs {
		if err := seed(models.KindPlayer, pid); err != nil {
			return err
		}
	}
	if err := seed(models.KindWeekday, pctx.WeekdayID); err != nil {
		return err
	}
	if err := seed(models.KindTimeSlot, pctx.TimeSlotID); err != nil {
		return err
	}
	if err := seed(models.KindPlayerCount, pctx.CountID); err != nil {
		return err
	}
	if err := seed(models.KindGameMode, pctx.ModeID); err != nil {
		return err
	}
	return seed(models.KindSession, models.RecentSessionID)
}

// buildLog constructs the processing-log entry for a full pass.
func buildLog(record *models.SessionRecord, ev *eventEntities) *models.ProcessLog {
	status := models.StatusProcessed
	if ev.location == nil {
		status = models.StatusMissingLocation
	}

	pctx := models.ProcessContext{}
	if ev.game != nil {
		pctx.GameID = ev.game.ID
	}
	for _, p := range ev.players {
		pctx.PlayerIDs = append(pctx.PlayerIDs, p.ID)
	}
	if ev.location != nil {
		pctx.LocationID = ev.location.ID
	}
	if ev.weekday != nil {
		pctx.WeekdayID = ev.weekday.ID
	}
	if ev.timeSlot != nil {
		pctx.TimeSlotID = ev.timeSlot.ID
	}
	if ev.count != nil {
		pctx.CountID = ev.count.ID
	}
	if ev.mode != nil {
		pctx.ModeID = ev.mode.ID
	}

	return &models.ProcessLog{
		RecordID:    record.ID,
		Status:      status,
		ProcessedAt: time.Now().UTC(),
		Context:     pctx,
	}
}

// writeBack persists dirty entities, changed weight domains, and log
// entries inside the enclosing transaction.
func writeBack(tx *storage.Txn, idx *resolveIndex, ws *weightSet, logs []*models.ProcessLog) error {
	for _, e := range idx.dirty {
		if err := tx.PutEntity(e); err != nil {
			return err
		}
	}
	for domain := range ws.dirty {
		if err := tx.PutWeights(domain, ws.byDomain[domain]); err != nil {
			return err
		}
	}
	for _, l := range logs {
		if l == nil {
			continue
		}
		if err := tx.PutLog(l); err != nil {
			return err
		}
	}
	return nil
}

// recordColors lists the distinct non-transparent colors a record used.
func recordColors(record *models.SessionRecord) []string {
	seen := make(map[string]struct{})
	var colors []string
	for _, pr := range record.ValidPlayers() {
		c := storage.NormalizeName(pr.Color)
		if c == "" || c == TransparentColor {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	}
	return colors
}

// excludeID filters id out of ids, dropping empties.
func excludeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v == "" || v == id {
			continue
		}
		out = append(out, v)
	}
	return out
}

// idList wraps a single optional id for a relation group.
func idList(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}
