// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package content

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/store"
	"github.com/tomtom215/sponsordesk/internal/validation"
)

// Kind names a site configuration document.
type Kind string

const (
	// KindPackages is the sponsorship packages page content.
	KindPackages Kind = "packages-config"
	// KindPricing is the pricing calculator's assumptions.
	KindPricing Kind = "pricing-config"
)

//go:embed defaults/packages-config.json
var packagesDefaults []byte

//go:embed defaults/pricing-config.json
var pricingDefaults []byte

type docSpec struct {
	key      string
	defaults json.RawMessage
}

var docSpecs = map[Kind]docSpec{
	KindPackages: {key: "packages-config", defaults: mustCompact(packagesDefaults)},
	KindPricing:  {key: "pricing_assumptions", defaults: mustCompact(pricingDefaults)},
}

func mustCompact(src []byte) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, src); err != nil {
		panic(fmt.Sprintf("content: embedded defaults are not valid JSON: %v", err))
	}
	return buf.Bytes()
}

// Kinds lists every config document kind. Each is served at /api/<kind>.
func Kinds() []Kind {
	return []Kind{KindPackages, KindPricing}
}

// Key returns the store key for the kind.
func (k Kind) Key() (string, error) {
	spec, ok := docSpecs[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return spec.key, nil
}

// Defaults returns a copy of the built-in document for kind.
func Defaults(kind Kind) (json.RawMessage, error) {
	spec, ok := docSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return append(json.RawMessage(nil), spec.defaults...), nil
}

// ConfigDocs reads and writes the site configuration documents. Documents
// are opaque JSON replaced wholesale; there is no schema.
type ConfigDocs struct {
	store store.Store
}

// NewConfigDocs creates a ConfigDocs on s.
func NewConfigDocs(s store.Store) *ConfigDocs {
	return &ConfigDocs{store: s}
}

// Get returns the stored document, or the defaults when nothing usable is
// stored. A store failure is logged and also falls back to the defaults, so
// the only error is an unknown kind.
func (c *ConfigDocs) Get(ctx context.Context, kind Kind) (json.RawMessage, error) {
	key, err := kind.Key()
	if err != nil {
		return nil, err
	}

	raw, err := c.store.Get(ctx, key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return Defaults(kind)
	case err != nil:
		logging.Ctx(ctx).Warn().Err(err).Str("kind", string(kind)).
			Msg("Config document read failed, serving defaults")
		return Defaults(kind)
	case !validation.Truthy(raw):
		// null, false, 0 and "" are treated as never set
		return Defaults(kind)
	}
	return raw, nil
}

// Set overwrites the stored document with body.
func (c *ConfigDocs) Set(ctx context.Context, kind Kind, body json.RawMessage) error {
	key, err := kind.Key()
	if err != nil {
		return err
	}

	if !json.Valid(body) {
		return ErrInvalidDocument
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return ErrInvalidDocument
	}
	if err := c.store.Set(ctx, key, buf.Bytes()); err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Str("kind", string(kind)).Int("bytes", buf.Len()).Msg("Config document updated")
	return nil
}

// Reset deletes the stored document and returns the defaults that will be
// served from now on.
func (c *ConfigDocs) Reset(ctx context.Context, kind Kind) (json.RawMessage, error) {
	key, err := kind.Key()
	if err != nil {
		return nil, err
	}
	if err := c.store.Delete(ctx, key); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("kind", string(kind)).Msg("Config document reset to defaults")
	return Defaults(kind)
}
