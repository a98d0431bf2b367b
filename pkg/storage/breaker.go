package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerDialer fails fast once the remote host has refused a run of
// consecutive connections. It never retries; it only stops dialing a host that
// is known to be down until openFor has elapsed.
type BreakerDialer struct {
	next    Dialer
	breaker *gobreaker.CircuitBreaker[Session]
}

// NewBreakerDialer wraps next with a circuit breaker.
func NewBreakerDialer(next Dialer, failures uint32, openFor time.Duration, logger *zap.Logger) *BreakerDialer {
	if failures == 0 {
		failures = 5
	}
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := gobreaker.Settings{
		Name:        "remote-store-dial",
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &BreakerDialer{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[Session](settings),
	}
}

func (b *BreakerDialer) Addr() string {
	return b.next.Addr()
}

func (b *BreakerDialer) Dial(ctx context.Context, creds Credentials) (Session, error) {
	return b.breaker.Execute(func() (Session, error) {
		return b.next.Dial(ctx, creds)
	})
}

// IsCircuitOpen reports whether err came from a tripped breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
