// Encore - Hybrid Song Recommendations for Musicians and Bands
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/encore

package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/encore/internal/metrics"
)

// Errors
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned for operations on a closed store.
	ErrClosed = errors.New("store closed")

	// ErrInvalidRecord is returned when a record cannot be stored as given.
	ErrInvalidRecord = errors.New("invalid record")
)

// Config holds store settings.
type Config struct {
	// Path is the badger data directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in memory. Used by tests and dry runs.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// MemTableSize overrides badger's memtable size in bytes when non-zero.
	MemTableSize int64
}

// Store persists the catalog, users, groups, campaigns and ratings in
// BadgerDB. Values are JSON encoded; keys are zero-padded so prefix scans
// return records in ascending ID order.
//
// Store is safe for concurrent use.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger

	mu     sync.RWMutex
	closed bool

	// ratingMu serializes rating writes so each one bumps the rating
	// version exactly once without transaction conflicts.
	ratingMu sync.Mutex

	// campaignMu serializes campaign ID allocation.
	campaignMu sync.Mutex
}

// Open opens (or creates) a store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("open store: path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.MemTableSize > 0 {
		opts.MemTableSize = cfg.MemTableSize
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	version, err := s.RatingVersion(context.Background())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	metrics.SetRatingVersion(version)

	s.logger.Debug().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Uint64("rating_version", version).
		Msg("store opened")
	return s, nil
}

// OpenInMemory opens an empty in-memory store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenInMemory(logger zerolog.Logger) (*Store, error) {
	return Open(Config{InMemory: true}, logger)
}

// Close closes the store. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	s.logger.Debug().Msg("store closed")
	return nil
}

// RunGC reclaims value log space until badger reports nothing to rewrite.
func (s *Store) RunGC(ratio float64) error {
	return s.do(context.Background(), "gc", func() error {
		for {
			err := s.db.RunValueLogGC(ratio)
			if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("run GC: %w", err)
			}
		}
	})
}

// do runs fn as one recorded store operation. The read lock is held for
// the duration so Close waits for in-flight operations.
func (s *Store) do(ctx context.Context, op string, fn func() error) error {
	start := time.Now()

	s.mu.RLock()
	var err error
	switch {
	case ctx.Err() != nil:
		err = ctx.Err()
	case s.closed:
		err = ErrClosed
	default:
		err = fn()
	}
	s.mu.RUnlock()

	metrics.RecordStoreOperation(op, time.Since(start), err)
	return err
}

// ========== Generic record helpers ==========

func setJSON(txn *badger.Txn, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return txn.Set(key, data)
}

func getJSON(txn *badger.Txn, key []byte, v interface{}) error {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// scanJSON decodes every value under prefix, in key order.
func scanJSON[T any](txn *badger.Txn, prefix []byte) ([]T, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var out []T
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var v T
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		}); err != nil {
			return nil, fmt.Errorf("decode %s: %w", it.Item().Key(), err)
		}
		out = append(out, v)
	}
	return out, nil
}

// deletePrefix removes every key under prefix.
func deletePrefix(txn *badger.Txn, prefix []byte) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)

	var keys [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		keys = append(keys, it.Item().KeyCopy(nil))
	}
	it.Close()

	for _, k := range keys {
		if err := txn.Delete(k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}

func readVersion(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(keyRatingVersion)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get rating version: %w", err)
	}
	var version uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("rating version: want 8 bytes, got %d", len(val))
		}
		version = binary.BigEndian.Uint64(val)
		return nil
	})
	return version, err
}

func writeVersion(txn *badger.Txn, version uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], version)
	return txn.Set(keyRatingVersion, buf[:])
}
