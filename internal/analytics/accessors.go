// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package analytics

import (
	"context"
	"math"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/beehiiv"
)

// numberAccessor extracts one candidate value. ok is false when the source
// does not define it.
type numberAccessor func(ctx context.Context) (value float64, ok bool)

// firstDefined tries accessors in order and returns the first defined value.
// Later accessors are not evaluated once one succeeds, so an accessor may
// make an upstream call.
func firstDefined(ctx context.Context, accessors ...numberAccessor) (float64, bool) {
	for _, get := range accessors {
		if v, ok := get(ctx); ok {
			return v, true
		}
	}
	return 0, false
}

// docPath reads a number at path from doc.
func docPath(doc beehiiv.Document, path ...string) numberAccessor {
	return func(context.Context) (float64, bool) {
		return doc.Number(path...)
	}
}

// firstPositive returns the first value at paths that is a number greater
// than zero, or 0.
func firstPositive(doc beehiiv.Document, paths ...[]string) float64 {
	for _, path := range paths {
		if v, ok := doc.Number(path...); ok && v > 0 {
			return v
		}
	}
	return 0
}

// numberOrZero is the value at path, or 0 when it is absent or not a number.
func numberOrZero(doc beehiiv.Document, path ...string) float64 {
	v, _ := doc.Number(path...)
	return v
}

// truthy follows JavaScript truthiness for decoded JSON values.
func truthy(v any, ok bool) bool {
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

// rawTruthy applies truthy to an undecoded JSON value.
func rawTruthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return truthy(v, true)
}

// rawValue re-encodes the value at path, or returns nil when absent.
func rawValue(doc beehiiv.Document, path ...string) json.RawMessage {
	v, ok := doc.Lookup(path...)
	if !ok {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// round matches JavaScript Math.round: halves round towards +Inf.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
