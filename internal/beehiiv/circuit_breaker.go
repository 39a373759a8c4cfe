// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package beehiiv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/sponsordesk/internal/config"
	"github.com/tomtom215/sponsordesk/internal/logging"
	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// CircuitBreakerClient wraps a Client with a circuit breaker so that a
// failing Beehiiv API is not hammered by every page view.
//
// Only upstream faults count as failures: transport errors, 5xx and 429.
// Other 4xx responses (a bad caller-supplied key, an unknown post ID) and
// cancelled requests are treated as successful calls.
type CircuitBreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewClient returns the production client: an HTTPClient behind a circuit
// breaker.
func NewClient(cfg *config.BeehiivConfig) *CircuitBreakerClient {
	return NewCircuitBreakerClient(NewHTTPClient(cfg), "beehiiv-api")
}

// NewCircuitBreakerClient wraps client. Circuit breaker configuration:
//   - Max 3 requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewCircuitBreakerClient(client Client, name string) *CircuitBreakerClient {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().Str("breaker", name).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).Msg("Opening circuit")
			}
			return shouldTrip
		},

		IsSuccessful: isSuccessful,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: name}
}

// isSuccessful decides whether err counts against the breaker.
func isSuccessful(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrAPIKeyNotSet) || errors.Is(err, ErrPubIDNotSet) {
		return true
	}
	if apiErr, ok := AsAPIError(err); ok {
		return !apiErr.Retryable()
	}
	return false
}

// State returns the breaker's current state.
func (cbc *CircuitBreakerClient) State() gobreaker.State {
	return cbc.cb.State()
}

func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
		logging.Warn().Err(err).Str("breaker", cbc.name).Msg("Request rejected by circuit breaker")
		return nil, fmt.Errorf("beehiiv unavailable: %w", err)
	case isSuccessful(err):
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
	}
	return result, err
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// GetPublication implements Client.
func (cbc *CircuitBreakerClient) GetPublication(ctx context.Context, creds Credentials) (Document, error) {
	return castResult[Document](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetPublication(ctx, creds)
	}))
}

// ListPosts implements Client.
func (cbc *CircuitBreakerClient) ListPosts(ctx context.Context, creds Credentials, q PostsQuery) (*PostsPage, error) {
	return castResult[*PostsPage](cbc.execute(func() (interface{}, error) {
		return cbc.client.ListPosts(ctx, creds, q)
	}))
}

// GetPost implements Client.
func (cbc *CircuitBreakerClient) GetPost(ctx context.Context, creds Credentials, postID string) (*PostEnvelope, error) {
	return castResult[*PostEnvelope](cbc.execute(func() (interface{}, error) {
		return cbc.client.GetPost(ctx, creds, postID)
	}))
}

// ListSubscriptions implements Client.
func (cbc *CircuitBreakerClient) ListSubscriptions(ctx context.Context, creds Credentials, params url.Values) (Document, error) {
	return castResult[Document](cbc.execute(func() (interface{}, error) {
		return cbc.client.ListSubscriptions(ctx, creds, params)
	}))
}

// ListSegments implements Client.
func (cbc *CircuitBreakerClient) ListSegments(ctx context.Context, creds Credentials) (Document, error) {
	return castResult[Document](cbc.execute(func() (interface{}, error) {
		return cbc.client.ListSegments(ctx, creds)
	}))
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
