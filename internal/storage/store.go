// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

// Package storage implements the persistent store collaborator on
// BadgerDB: keyed get/put, bulk get/put, count, and secondary-field
// lookups over entity tables, plus the processing-log and
// weight-configuration tables.
//
// # Key Layout
//
//	entity:<kind>:<id>      entity record (JSON)
//	name:<kind>:<name>      normalized display name -> entity id
//	ext:<kind>:<extId>      external reference id -> entity id
//	log:<recordId>          processing-log record
//	weights:<domain>        weight configuration per recommendation domain
//
// # Transactions
//
// Training runs inside a single Update closure: either every entity,
// log, and weight mutation of a pass commits, or none does. Read-only
// scoring uses View closures and an LRU byte cache in front of the entity
// table; cache entries touched by a committed transaction are invalidated
// after the commit.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/ludolog/internal/cache"
	"github.com/tomtom215/ludolog/internal/logging"
	"github.com/tomtom215/ludolog/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Key prefixes.
const (
	entityPrefix  = "entity:"
	namePrefix    = "name:"
	extPrefix     = "ext:"
	logPrefix     = "log:"
	weightsPrefix = "weights:"
)

// Store is the BadgerDB-backed persistent store.
type Store struct {
	db     *badger.DB
	cache  *cache.EntityCache
	logger zerolog.Logger
}

// Options configures a Store.
type Options struct {
	// Dir is the Badger data directory. Empty means in-memory (tests).
	Dir string

	// CacheCapacity bounds the entity read cache. Zero uses the default.
	CacheCapacity int

	// CacheTTL bounds cache entry lifetime. Zero uses the default.
	CacheTTL time.Duration
}

// Open opens (or creates) the store.
func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Dir).WithLogger(nil)
	if opts.Dir == "" {
		bopts = bopts.WithInMemory(true)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &Store{
		db:     db,
		cache:  cache.NewEntityCache(opts.CacheCapacity, opts.CacheTTL),
		logger: logging.Component("storage"),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset drops all learned state: entities, indexes, logs, and weights.
func (s *Store) Reset() error {
	if err := s.db.DropAll(); err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	s.cache.Purge()
	s.logger.Info().Msg("store reset")
	return nil
}

func entityKey(kind models.EntityKind, id string) []byte {
	return []byte(entityPrefix + string(kind) + ":" + id)
}

func nameKey(kind models.EntityKind, name string) []byte {
	return []byte(namePrefix + string(kind) + ":" + NormalizeName(name))
}

func extKey(kind models.EntityKind, externalID string) []byte {
	return []byte(extPrefix + string(kind) + ":" + externalID)
}

func logKey(recordID string) []byte {
	return []byte(logPrefix + recordID)
}

func weightsKey(domain string) []byte {
	return []byte(weightsPrefix + domain)
}

// NormalizeName canonicalizes a display name for index matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// GetEntity returns an entity by kind and id, consulting the read cache
// first. Returns ErrNotFound when absent.
func (s *Store) GetEntity(kind models.EntityKind, id string) (*models.Entity, error) {
	key := entityKey(kind, id)

	if raw, ok := s.cache.Get(string(key)); ok {
		var e models.Entity
		if err := json.Unmarshal(raw, &e); err == nil {
			return &e, nil
		}
		s.cache.Remove(string(key))
	}

	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get entity: %w", err)
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	var e models.Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("unmarshal entity %s/%s: %w", kind, id, err)
	}
	s.cache.Add(string(key), raw)
	return &e, nil
}

// GetEntityByName resolves an entity through the name index.
func (s *Store) GetEntityByName(kind models.EntityKind, name string) (*models.Entity, error) {
	if NormalizeName(name) == "" {
		return nil, ErrNotFound
	}

	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		id, err = readIndex(txn, nameKey(kind, name))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetEntity(kind, id)
}

// GetEntityByExternalID resolves an entity through the external-id index.
func (s *Store) GetEntityByExternalID(kind models.EntityKind, externalID string) (*models.Entity, error) {
	if externalID == "" {
		return nil, ErrNotFound
	}

	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		id, err = readIndex(txn, extKey(kind, externalID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetEntity(kind, id)
}

// BulkGetEntities fetches many entities of one kind in a single read
// transaction. Missing ids are silently omitted.
func (s *Store) BulkGetEntities(kind models.EntityKind, ids []string) ([]*models.Entity, error) {
	out := make([]*models.Entity, 0, len(ids))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			e, err := readEntity(txn, kind, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EntitiesByKind returns every entity of a kind. Used by the batch
// pipeline's bulk-load phase.
func (s *Store) EntitiesByKind(kind models.EntityKind) ([]*models.Entity, error) {
	prefix := []byte(entityPrefix + string(kind) + ":")
	var out []*models.Entity

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var e models.Entity
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				return fmt.Errorf("scan %s entities: %w", kind, err)
			}
			out = append(out, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountEntities returns the number of stored entities of a kind.
func (s *Store) CountEntities(kind models.EntityKind) (int, error) {
	prefix := []byte(entityPrefix + string(kind) + ":")
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// GetLog returns the processing-log record for a session record id.
func (s *Store) GetLog(recordID string) (*models.ProcessLog, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(logKey(recordID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get log: %w", err)
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	var l models.ProcessLog
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("unmarshal log %s: %w", recordID, err)
	}
	return &l, nil
}

// BulkGetLogs fetches the processing logs for many record ids in one read
// transaction; absent records are omitted from the result map.
func (s *Store) BulkGetLogs(recordIDs []string) (map[string]*models.ProcessLog, error) {
	out := make(map[string]*models.ProcessLog, len(recordIDs))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range recordIDs {
			item, err := txn.Get(logKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get log %s: %w", id, err)
			}
			var l models.ProcessLog
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &l)
			}); err != nil {
				return fmt.Errorf("unmarshal log %s: %w", id, err)
			}
			out[id] = &l
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetWeights returns the weight configuration for a recommendation
// domain, or an empty configuration when none has been saved.
func (s *Store) GetWeights(domain string) (models.Weights, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(weightsKey(domain))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get weights: %w", err)
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return models.Weights{}, nil
	}

	var w models.Weights
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("unmarshal weights %s: %w", domain, err)
	}
	return w.Clamped(), nil
}

// PutWeights persists a weight configuration outside a training
// transaction (the SaveWeights operation). Values are clamped.
func (s *Store) PutWeights(domain string, w models.Weights) error {
	data, err := json.Marshal(w.Clamped())
	if err != nil {
		return fmt.Errorf("marshal weights: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(weightsKey(domain), data)
	})
}

// readIndex reads a secondary-index value (an entity id).
func readIndex(txn *badger.Txn, key []byte) (string, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get index: %w", err)
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// readEntity reads and decodes an entity within a transaction.
func readEntity(txn *badger.Txn, kind models.EntityKind, id string) (*models.Entity, error) {
	item, err := txn.Get(entityKey(kind, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entity: %w", err)
	}

	var e models.Entity
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &e)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal entity %s/%s: %w", kind, id, err)
	}
	return &e, nil
}
