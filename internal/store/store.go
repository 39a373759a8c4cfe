// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// ErrEmptyKey is returned when an operation is given an empty key.
var ErrEmptyKey = errors.New("key cannot be empty")

// UpdateFunc computes the new value for a key from its current value.
// found is false when the key is absent, in which case current is nil.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// Store is a key-value store holding whole JSON documents as raw bytes.
// Values are opaque to the store; callers own encoding.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Update applies fn to the current value and stores the result as a single
	// read-modify-write. Concurrent Updates on one Store do not interleave.
	Update(ctx context.Context, key string, fn UpdateFunc) error

	// Close releases resources held by the store.
	Close() error
}

// Open returns the backend named by backend ("memory" or "badger").
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "badger":
		return OpenBadgerStore(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// resultLabel maps an operation error to the metrics result label.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
