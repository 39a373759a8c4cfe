// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// gcDiscardRatio is the fraction of stale data a value-log file must hold
// before RunGC rewrites it.
const gcDiscardRatio = 0.5

// BadgerStore implements Store on an embedded BadgerDB for durable storage
// across restarts.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
//
//	s, err := store.OpenBadgerStore("/var/lib/sponsordesk")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
func OpenBadgerStore(path string) (*BadgerStore, error) {
	if path == "" {
		return nil, errors.New("badger store path cannot be empty")
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = newBadgerLogger()
	// Documents are small; keep value-log files small too.
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store at %s: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// Get returns the value for key, or ErrNotFound.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	metrics.RecordStoreOperation("badger", "get", resultLabel(err))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Set overwrites the value for key.
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	metrics.RecordStoreOperation("badger", "set", resultLabel(err))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	metrics.RecordStoreOperation("badger", "delete", resultLabel(err))
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Update applies fn inside a single read-write transaction. Badger retries
// are not attempted; a conflicting concurrent commit surfaces as an error.
func (s *BadgerStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		var current []byte
		found := true

		item, err := txn.Get([]byte(key))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			found = false
		case err != nil:
			return fmt.Errorf("get %s: %w", key, err)
		default:
			if current, err = item.ValueCopy(nil); err != nil {
				return err
			}
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}
		return txn.Set([]byte(key), next)
	})
	metrics.RecordStoreOperation("badger", "update", resultLabel(err))
	return err
}

// RunGC runs one pass of value-log garbage collection. It reports whether a
// file was rewritten; nothing to collect is not an error.
func (s *BadgerStore) RunGC() (bool, error) {
	err := s.db.RunValueLogGC(gcDiscardRatio)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrRejected):
		return false, nil
	default:
		return false, err
	}
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes Badger's internal logging through zerolog.
type badgerLogger struct {
	l zerolog.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{l: logging.WithComponent("badger")}
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error().Msgf(format, args...)
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn().Msgf(format, args...)
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug().Msgf(format, args...)
}

func (b *badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Trace().Msgf(format, args...)
}
