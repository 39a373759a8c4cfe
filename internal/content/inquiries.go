// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package content

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/metrics"
	"github.com/tomtom215/sponsordesk/internal/models"
	"github.com/tomtom215/sponsordesk/internal/store"
	"github.com/tomtom215/sponsordesk/internal/validation"
)

const (
	inquiriesKey = "inquiries"

	// isoMillis is the layout of Inquiry.CreatedAt.
	isoMillis = "2006-01-02T15:04:05.000Z"
)

// Inquiries keeps the sponsorship leads as one JSON array, newest first.
//
// Adds are serialized within the process. Two instances sharing a store can
// still lose an inquiry to a concurrent read-modify-write.
type Inquiries struct {
	store store.Store
	now   func() time.Time

	mu sync.Mutex
}

// NewInquiries creates an inquiry list on s.
func NewInquiries(s store.Store) *Inquiries {
	return &Inquiries{store: s, now: time.Now}
}

// WithClock replaces the time source used for IDs and timestamps.
func (i *Inquiries) WithClock(now func() time.Time) *Inquiries {
	i.now = now
	return i
}

// Add records an inquiry at the head of the list and returns it.
func (i *Inquiries) Add(ctx context.Context, req *models.InquiryRequest) (*models.Inquiry, error) {
	if req.Email == "" {
		return nil, ErrEmailRequired
	}

	now := i.now().UTC()
	inquiry := &models.Inquiry{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Tier:      req.Tier,
		Takeover:  validation.Truthy(req.Takeover),
		Message:   req.Message,
		CreatedAt: now.Format(isoMillis),
	}
	record, err := json.Marshal(inquiry)
	if err != nil {
		return nil, fmt.Errorf("marshal inquiry: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	err = i.store.Update(ctx, inquiriesKey, func(current []byte, found bool) ([]byte, error) {
		list := decodeList(current)
		out := make([]json.RawMessage, 0, len(list)+1)
		out = append(out, record)
		out = append(out, list...)
		return json.Marshal(out)
	})
	if err != nil {
		return nil, err
	}

	metrics.InquiriesReceived.Inc()
	logging.Ctx(ctx).Info().
		Str("inquiry_id", inquiry.ID).
		Str("tier", logging.SanitizeLogValue(inquiry.Tier)).
		Bool("takeover", inquiry.Takeover).
		Msg("Inquiry received")
	return inquiry, nil
}

// List returns every stored inquiry, newest first. Nothing stored, or a
// stored value that is not an array, yields an empty list.
func (i *Inquiries) List(ctx context.Context) ([]json.RawMessage, error) {
	raw, err := i.store.Get(ctx, inquiriesKey)
	if errors.Is(err, store.ErrNotFound) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeList(raw), nil
}

// decodeList parses a stored JSON array, keeping each element raw so that
// records written by older versions round-trip untouched.
func decodeList(raw []byte) []json.RawMessage {
	var list []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &list) != nil || list == nil {
		return []json.RawMessage{}
	}
	return list
}
