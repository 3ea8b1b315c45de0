package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/custodia-labs/tssearch/internal/core/domain"
	"github.com/custodia-labs/tssearch/internal/logger"
)

// Default backoff bounds. Waits run 1, 2, 4, 8, 16, 32 seconds; the next
// wait of 64s exceeds MaxWait so at most seven attempts are made.
const (
	DefaultInitialWait = time.Second
	DefaultMaxWait     = 60 * time.Second
)

// Backoff retries provider calls with doubling waits.
// The wait counter is local to each Do call.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration

	// notify is called before each wait, after the debug log.
	notify func(err error, wait time.Duration)
}

// DefaultBackoff returns the 1s..60s policy.
func DefaultBackoff() Backoff {
	return Backoff{
		Initial: DefaultInitialWait,
		Max:     DefaultMaxWait,
	}
}

// Do calls fn until it succeeds, returns a non-retryable error, or the next
// wait would exceed Max. Exhaustion is reported as domain.ErrBadGateway
// wrapping the last failure.
func (b Backoff) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := 0
	operation := func() (struct{}, error) {
		attempts++
		err := fn(ctx)
		if err != nil && !domain.Retryable(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}
	notify := func(err error, wait time.Duration) {
		logger.Debug("%s failed (attempt %d), retrying in %s: %v", op, attempts, wait, err)
		if b.notify != nil {
			b.notify(err, wait)
		}
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b.policy()),
		backoff.WithNotify(notify),
	)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil, !domain.Retryable(err):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: giving up after %d attempts: %w: %w", op, attempts, domain.ErrBadGateway, err)
	}
}

func (b Backoff) policy() *doublingBackOff {
	initial := b.Initial
	if initial <= 0 {
		initial = DefaultInitialWait
	}
	limit := b.Max
	if limit <= 0 {
		limit = DefaultMaxWait
	}
	return &doublingBackOff{initial: initial, limit: limit, next: initial}
}

// doublingBackOff yields initial, 2*initial, 4*initial... and stops once the
// next wait would exceed limit.
type doublingBackOff struct {
	initial time.Duration
	limit   time.Duration
	next    time.Duration
}

var _ backoff.BackOff = (*doublingBackOff)(nil)

func (d *doublingBackOff) NextBackOff() time.Duration {
	if d.next > d.limit {
		return backoff.Stop
	}
	wait := d.next
	d.next *= 2
	return wait
}

func (d *doublingBackOff) Reset() {
	d.next = d.initial
}
