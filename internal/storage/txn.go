// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/ludolog/internal/models"
)

// Txn wraps a Badger read-write transaction with typed operations over
// the entity, log, and weight tables. All reads inside a Txn see the
// transaction's own writes; nothing becomes visible to readers until the
// enclosing Update commits.
type Txn struct {
	txn     *badger.Txn
	touched []string
}

// Update runs fn inside a single read-write transaction. On success, cache
// entries for every entity the transaction wrote are invalidated; on error
// the transaction rolls back and no mutation is observable.
func (s *Store) Update(fn func(tx *Txn) error) error {
	tx := &Txn{}
	err := s.db.Update(func(btxn *badger.Txn) error {
		tx.txn = btxn
		tx.touched = tx.touched[:0]
		return fn(tx)
	})
	if err != nil {
		return err
	}
	for _, key := range tx.touched {
		s.cache.Remove(key)
	}
	return nil
}

// GetEntity reads an entity inside the transaction. Returns ErrNotFound
// when absent.
func (t *Txn) GetEntity(kind models.EntityKind, id string) (*models.Entity, error) {
	return readEntity(t.txn, kind, id)
}

// GetEntityByName resolves an entity through the name index inside the
// transaction.
func (t *Txn) GetEntityByName(kind models.EntityKind, name string) (*models.Entity, error) {
	if NormalizeName(name) == "" {
		return nil, ErrNotFound
	}
	id, err := readIndex(t.txn, nameKey(kind, name))
	if err != nil {
		return nil, err
	}
	return t.GetEntity(kind, id)
}

// GetEntityByExternalID resolves an entity through the external-id index
// inside the transaction.
func (t *Txn) GetEntityByExternalID(kind models.EntityKind, externalID string) (*models.Entity, error) {
	if externalID == "" {
		return nil, ErrNotFound
	}
	id, err := readIndex(t.txn, extKey(kind, externalID))
	if err != nil {
		return nil, err
	}
	return t.GetEntity(kind, id)
}

// PutEntity writes an entity and maintains its name and external-id index
// keys.
func (t *Txn) PutEntity(e *models.Entity) error {
	if e.ID == "" || e.Kind == "" {
		return fmt.Errorf("put entity: missing id or kind")
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entity %s/%s: %w", e.Kind, e.ID, err)
	}

	key := entityKey(e.Kind, e.ID)
	if err := t.txn.Set(key, data); err != nil {
		return fmt.Errorf("set entity: %w", err)
	}
	t.touched = append(t.touched, string(key))

	if NormalizeName(e.Name) != "" {
		if err := t.txn.Set(nameKey(e.Kind, e.Name), []byte(e.ID)); err != nil {
			return fmt.Errorf("set name index: %w", err)
		}
	}
	if e.ExternalID != "" {
		if err := t.txn.Set(extKey(e.Kind, e.ExternalID), []byte(e.ID)); err != nil {
			return fmt.Errorf("set external index: %w", err)
		}
	}
	return nil
}

// GetLog reads a processing-log record inside the transaction.
func (t *Txn) GetLog(recordID string) (*models.ProcessLog, error) {
	item, err := t.txn.Get(logKey(recordID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}

	var l models.ProcessLog
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &l)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal log %s: %w", recordID, err)
	}
	return &l, nil
}

// PutLog writes a processing-log record.
func (t *Txn) PutLog(l *models.ProcessLog) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal log %s: %w", l.RecordID, err)
	}
	if err := t.txn.Set(logKey(l.RecordID), data); err != nil {
		return fmt.Errorf("set log: %w", err)
	}
	return nil
}

// GetWeights reads a domain weight configuration inside the transaction,
// returning an empty configuration when none exists.
func (t *Txn) GetWeights(domain string) (models.Weights, error) {
	item, err := t.txn.Get(weightsKey(domain))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.Weights{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weights: %w", err)
	}

	var w models.Weights
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &w)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal weights %s: %w", domain, err)
	}
	return w.Clamped(), nil
}

// PutWeights writes a domain weight configuration, clamped.
func (t *Txn) PutWeights(domain string, w models.Weights) error {
	data, err := json.Marshal(w.Clamped())
	if err != nil {
		return fmt.Errorf("marshal weights %s: %w", domain, err)
	}
	if err := t.txn.Set(weightsKey(domain), data); err != nil {
		return fmt.Errorf("set weights: %w", err)
	}
	return nil
}
