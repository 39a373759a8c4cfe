// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// scriptedGC returns its results in order, then "nothing to collect".
type scriptedGC struct {
	mu      sync.Mutex
	results []error
	rewrite []bool
	calls   int
}

func (g *scriptedGC) RunGC() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.calls
	g.calls++
	if i >= len(g.rewrite) {
		return false, nil
	}
	return g.rewrite[i], g.results[i]
}

func (g *scriptedGC) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// The collect tests share the StoreGCRuns counter and so do not run in
// parallel.

func TestStoreGCCollectRepeatsWhileRewriting(t *testing.T) {
	gc := &scriptedGC{rewrite: []bool{true, true, false}, results: []error{nil, nil, nil}}
	svc := NewStoreGCService(gc, time.Minute)

	rewritten := testutil.ToFloat64(metrics.StoreGCRuns.WithLabelValues("rewritten"))
	noop := testutil.ToFloat64(metrics.StoreGCRuns.WithLabelValues("noop"))

	svc.collect(context.Background())

	if gc.Calls() != 3 {
		t.Errorf("RunGC called %d times, want 3", gc.Calls())
	}
	if got := testutil.ToFloat64(metrics.StoreGCRuns.WithLabelValues("rewritten")) - rewritten; got != 2 {
		t.Errorf("rewritten runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.StoreGCRuns.WithLabelValues("noop")) - noop; got != 1 {
		t.Errorf("noop runs = %v, want 1", got)
	}
}

func TestStoreGCCollectStopsOnError(t *testing.T) {
	gc := &scriptedGC{rewrite: []bool{true, false, true}, results: []error{nil, errors.New("disk full"), nil}}
	svc := NewStoreGCService(gc, time.Minute)

	errorsBefore := testutil.ToFloat64(metrics.StoreGCRuns.WithLabelValues("error"))
	svc.collect(context.Background())

	if gc.Calls() != 2 {
		t.Errorf("RunGC called %d times, want 2", gc.Calls())
	}
	if got := testutil.ToFloat64(metrics.StoreGCRuns.WithLabelValues("error")) - errorsBefore; got != 1 {
		t.Errorf("error runs = %v, want 1", got)
	}
}

func TestStoreGCCollectIsBounded(t *testing.T) {
	rewrite := make([]bool, maxGCPasses*2)
	results := make([]error, len(rewrite))
	for i := range rewrite {
		rewrite[i] = true
	}
	gc := &scriptedGC{rewrite: rewrite, results: results}

	NewStoreGCService(gc, time.Minute).collect(context.Background())
	if gc.Calls() != maxGCPasses {
		t.Errorf("RunGC called %d times, want %d", gc.Calls(), maxGCPasses)
	}
}

func TestStoreGCServiceTicksUntilCanceled(t *testing.T) {
	gc := &scriptedGC{}
	svc := NewStoreGCService(gc, 5*time.Millisecond)
	if svc.String() != "store-gc" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for gc.Calls() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if gc.Calls() < 2 {
		t.Errorf("RunGC called %d times, want at least 2", gc.Calls())
	}
}

func TestNewStoreGCServiceDefaultInterval(t *testing.T) {
	if got := NewStoreGCService(&scriptedGC{}, 0).interval; got != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", got)
	}
}
