// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package store

import (
	"context"
	"sync"

	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// MemoryStore is an in-process Store. Data is lost on restart.
// Suitable for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	s.mu.RLock()
	v, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		metrics.RecordStoreOperation("memory", "get", resultLabel(ErrNotFound))
		return nil, ErrNotFound
	}
	metrics.RecordStoreOperation("memory", "get", "ok")
	return cloneBytes(v), nil
}

// Set stores a copy of value.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	s.data[key] = cloneBytes(value)
	s.mu.Unlock()
	metrics.RecordStoreOperation("memory", "set", "ok")
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	metrics.RecordStoreOperation("memory", "delete", "ok")
	return nil
}

// Update runs fn under the store's write lock.
func (s *MemoryStore) Update(_ context.Context, key string, fn UpdateFunc) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, found := s.data[key]
	next, err := fn(cloneBytes(current), found)
	if err != nil {
		metrics.RecordStoreOperation("memory", "update", "error")
		return err
	}
	s.data[key] = cloneBytes(next)
	metrics.RecordStoreOperation("memory", "update", "ok")
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
