// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/ludolog/internal/metrics"
	"github.com/tomtom215/ludolog/internal/models"
	"github.com/tomtom215/ludolog/internal/storage"
)

// ReprocessAllHistory trains the model over a full session history in
// four phases: harvest the records still pending against the processing
// log, bulk-load every entity and weight configuration once, resolve and
// train each pending record purely in memory, and write changes back in
// chunks. Each chunk commits atomically; cancellation is honored only at
// chunk boundaries, so an interrupted run leaves whole chunks either
// fully applied or untouched, and a rerun skips what already committed.
//
// onProgress, when non-nil, receives a monotonic 0-100 percentage.
func (e *Engine) ReprocessAllHistory(ctx context.Context, records []*models.SessionRecord, onProgress ProgressFunc) error {
	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.ReprocessDuration.Observe(time.Since(start).Seconds())
	}()

	report := func(pct int) {
		if onProgress != nil {
			onProgress(pct)
		}
	}
	report(0)

	// Phase a: harvest pending records.
	pending, logs, err := e.harvestPending(records)
	if err != nil {
		return fmt.Errorf("reprocess: %w", err)
	}
	if len(pending) == 0 {
		e.logger.Info().Int("records", len(records)).Msg("reprocess: nothing pending")
		report(100)
		return nil
	}

	// Phase b: bulk-load the complete entity population and weights.
	idx, ws, err := e.bulkLoad()
	if err != nil {
		return fmt.Errorf("reprocess: %w", err)
	}

	// Phases c and d, chunked: in-memory training then one write-back
	// transaction per chunk.
	chunkSize := e.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 25
	}

	trained := 0
	for begin := 0; begin < len(pending); begin += chunkSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("reprocess canceled after %d of %d records: %w", trained, len(pending), err)
		}

		end := begin + chunkSize
		if end > len(pending) {
			end = len(pending)
		}
		chunk := pending[begin:end]

		chunkLogs := make([]*models.ProcessLog, 0, len(chunk))
		for _, record := range chunk {
			logEntry := e.reprocessRecord(idx, ws, logs, record)
			if logEntry == nil {
				continue
			}
			logs[record.ID] = logEntry
			chunkLogs = append(chunkLogs, logEntry)
		}

		err := e.store.Update(func(tx *storage.Txn) error {
			return writeBack(tx, idx, ws, chunkLogs)
		})
		if err != nil {
			metrics.TrainingErrors.Inc()
			return fmt.Errorf("reprocess chunk %d-%d: %w", begin, end, err)
		}

		// A committed chunk's state is no longer dirty.
		idx.dirty = make(map[string]*models.Entity)
		ws.dirty = make(map[string]struct{})

		trained += len(chunk)
		metrics.ReprocessChunks.Inc()
		report(trained * 100 / len(pending))
	}

	e.logger.Info().
		Int("records", len(records)).
		Int("trained", trained).
		Dur("elapsed", time.Since(start)).
		Msg("reprocess complete")
	report(100)
	return nil
}

// harvestPending filters the history down to records the processing log
// has not fully covered, preserving input order.
func (e *Engine) harvestPending(records []*models.SessionRecord) ([]*models.SessionRecord, map[string]*models.ProcessLog, error) {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if r != nil && r.ID != "" {
			ids = append(ids, r.ID)
		}
	}

	logs, err := e.store.BulkGetLogs(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("load processing logs: %w", err)
	}

	pending := make([]*models.SessionRecord, 0, len(records))
	for _, r := range records {
		if r == nil || r.ID == "" {
			continue
		}
		logEntry, seen := logs[r.ID]
		switch {
		case !seen:
			pending = append(pending, r)
		case logEntry.Status == models.StatusMissingLocation && r.HasLocation():
			pending = append(pending, r)
		default:
			metrics.SessionsSkipped.Inc()
		}
	}
	return pending, logs, nil
}

// bulkLoad builds the in-memory resolution index from a full scan of
// every entity kind, and seeds the weight set with all stored domains.
func (e *Engine) bulkLoad() (*resolveIndex, *weightSet, error) {
	idx := newResolveIndex()
	for _, kind := range models.Kinds {
		entities, err := e.store.EntitiesByKind(kind)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s entities: %w", kind, err)
		}
		for _, entity := range entities {
			idx.insert(entity)
		}
		idx.counts[kind] = len(entities)
	}

	ws := newWeightSet()
	for _, domain := range models.Domains {
		w, err := e.store.GetWeights(domain)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s weights: %w", domain, err)
		}
		ws.set(domain, w)
	}
	return idx, ws, nil
}

// reprocessRecord trains one record against the in-memory state and
// returns its new log entry, or nil when the log already covers it.
func (e *Engine) reprocessRecord(idx *resolveIndex, ws *weightSet, logs map[string]*models.ProcessLog, record *models.SessionRecord) *models.ProcessLog {
	prev, seen := logs[record.ID]

	if !seen {
		ev := resolveEvent(idx, record)
		e.applyFullEvent(idx, ev, eventTime(record), ws)
		metrics.SessionsTrained.Inc()
		return buildLog(record, ev)
	}

	if prev.Status != models.StatusMissingLocation || !record.HasLocation() {
		return nil
	}

	loc, _ := idx.resolveOrCreate(models.KindLocation, record.LocationID, "", record.LocationName)
	if loc == nil {
		return nil
	}
	e.applyLocationRelink(idx, loc, prev.Context, recordColors(record), eventTime(record), ws)
	metrics.SessionsTrained.Inc()

	updated := *prev
	updated.Status = models.StatusProcessed
	updated.ProcessedAt = time.Now().UTC()
	updated.Context.LocationID = loc.ID
	return &updated
}
