package storage

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"chagual/internal/logging"
	"chagual/internal/metrics"
)

// Breaker stops calling a failing store for a while so that requests fail
// fast with ErrUpstream instead of waiting on a dead upstream.
type Breaker struct {
	next ObjectStore
	name string
	cb   *gobreaker.CircuitBreaker[string]
}

// NewBreaker opens after 5 consecutive failures, or a 60% failure rate over
// at least 10 uploads, and probes again after 30 seconds.
func NewBreaker(name string, next ObjectStore) *Breaker {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 5 {
				return true
			}
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Caller cancellation says nothing about the health of the store.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Breaker{next: next, name: name, cb: cb}
}

func (b *Breaker) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	url, err := b.cb.Execute(func() (string, error) {
		return b.next.Upload(ctx, name, contentType, data)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.StorageUploads.WithLabelValues(b.name, "rejected").Inc()
		}
		return "", upstream(err)
	}
	return url, nil
}

// Unwrap returns the decorated store.
func (b *Breaker) Unwrap() ObjectStore { return b.next }

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
