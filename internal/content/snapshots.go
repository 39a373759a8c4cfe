// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package content

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/store"
	"github.com/tomtom215/sponsordesk/internal/validation"
)

const snapshotPrefix = "sponsor:"

// Snapshots stores the sponsor dashboards shared by link. Each snapshot is
// an opaque JSON document keyed by its share token.
type Snapshots struct {
	store store.Store
}

// NewSnapshots creates a snapshot store on s.
func NewSnapshots(s store.Store) *Snapshots {
	return &Snapshots{store: s}
}

func snapshotKey(token string) string {
	return snapshotPrefix + token
}

// Publish stores data under shareToken, replacing any earlier snapshot.
// Both values must be present; data must also be truthy, so null, false, 0
// and "" are rejected.
func (s *Snapshots) Publish(ctx context.Context, shareToken string, data json.RawMessage) error {
	if shareToken == "" || !validation.Truthy(data) {
		return ErrMissingShareTokenOrData
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := s.store.Set(ctx, snapshotKey(shareToken), buf.Bytes()); err != nil {
		return err
	}

	logging.Ctx(ctx).Debug().Int("bytes", buf.Len()).Msg("Sponsor snapshot published")
	return nil
}

// Fetch returns the snapshot for token, or store.ErrNotFound. A snapshot
// stored as a JSON string holding a JSON document is unwrapped once.
func (s *Snapshots) Fetch(ctx context.Context, token string) (json.RawMessage, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	raw, err := s.store.Get(ctx, snapshotKey(token))
	if err != nil {
		return nil, err
	}
	if !validation.Truthy(raw) {
		return nil, store.ErrNotFound
	}

	raw = bytes.TrimSpace(raw)
	if raw[0] != '"' {
		return raw, nil
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if !json.Valid([]byte(inner)) {
		return nil, fmt.Errorf("decode snapshot: %w", ErrInvalidDocument)
	}
	return json.RawMessage(inner), nil
}
