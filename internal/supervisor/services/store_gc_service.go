// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package services

import (
	"context"
	"time"

	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// GarbageCollector is a store with a value-log to compact.
// *store.BadgerStore satisfies it.
type GarbageCollector interface {
	RunGC() (bool, error)
}

// maxGCPasses bounds the rewrites done in a single tick.
const maxGCPasses = 16

// StoreGCService periodically compacts the key-value store's value log.
type StoreGCService struct {
	gc       GarbageCollector
	interval time.Duration
	name     string
}

// NewStoreGCService runs gc every interval. A non-positive interval means
// ten minutes.
func NewStoreGCService(gc GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{gc: gc, interval: interval, name: "store-gc"}
}

// Serve implements suture.Service. GC errors are logged and counted; the
// service keeps running.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.collect(ctx)
		}
	}
}

// collect repeats GC while it keeps rewriting files.
func (s *StoreGCService) collect(ctx context.Context) {
	for pass := 0; pass < maxGCPasses; pass++ {
		if ctx.Err() != nil {
			return
		}

		rewritten, err := s.gc.RunGC()
		switch {
		case err != nil:
			metrics.StoreGCRuns.WithLabelValues("error").Inc()
			logging.Warn().Err(err).Msg("Store garbage collection failed")
			return
		case !rewritten:
			metrics.StoreGCRuns.WithLabelValues("noop").Inc()
			return
		}

		metrics.StoreGCRuns.WithLabelValues("rewritten").Inc()
		logging.Debug().Int("pass", pass+1).Msg("Store value log rewritten")
	}
}

// String implements fmt.Stringer for suture's event log.
func (s *StoreGCService) String() string {
	return s.name
}
