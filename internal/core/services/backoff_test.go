package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// recordingBackoff records waits on a microsecond scale.
type recordingBackoff struct {
	waits []time.Duration
}

func (r *recordingBackoff) newBackoff() Backoff {
	return Backoff{
		Initial: time.Microsecond,
		Max:     60 * time.Microsecond,
		notify:  func(_ error, wait time.Duration) { r.waits = append(r.waits, wait) },
	}
}

func TestDefaultBackoff_Schedule(t *testing.T) {
	policy := DefaultBackoff().policy()

	var waits []time.Duration
	for wait := policy.NextBackOff(); wait != backoff.Stop; wait = policy.NextBackOff() {
		waits = append(waits, wait)
	}

	assert.Equal(t, []time.Duration{
		1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		16 * time.Second, 32 * time.Second,
	}, waits)

	policy.Reset()
	assert.Equal(t, time.Second, policy.NextBackOff())
}

func TestBackoff_AlwaysFailing(t *testing.T) {
	rec := &recordingBackoff{}
	calls := 0
	transient := errors.New("503 backend error")

	err := rec.newBackoff().Do(context.Background(), "list items", func(context.Context) error {
		calls++
		return transient
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadGateway)
	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 7, calls)
	assert.Equal(t, []time.Duration{
		1 * time.Microsecond, 2 * time.Microsecond, 4 * time.Microsecond, 8 * time.Microsecond,
		16 * time.Microsecond, 32 * time.Microsecond,
	}, rec.waits)
}

func TestBackoff_RecoversAfterFailures(t *testing.T) {
	rec := &recordingBackoff{}
	calls := 0

	err := rec.newBackoff().Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return domain.ErrServiceUnavailable
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Microsecond, 2 * time.Microsecond}, rec.waits)
}

func TestBackoff_NonRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid input", domain.ErrInvalidInput},
		{"not found", domain.ErrNotFound},
		{"domain parse", domain.ErrDomainParse},
		{"auth required", domain.ErrAuthRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingBackoff{}
			calls := 0

			err := rec.newBackoff().Do(context.Background(), "op", func(context.Context) error {
				calls++
				return tt.err
			})

			assert.ErrorIs(t, err, tt.err)
			assert.NotErrorIs(t, err, domain.ErrBadGateway)
			assert.Equal(t, 1, calls)
			assert.Empty(t, rec.waits)
		})
	}
}

func TestBackoff_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recordingBackoff{}
	calls := 0

	err := rec.newBackoff().Do(ctx, "op", func(context.Context) error {
		calls++
		cancel()
		return domain.ErrRateLimited
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrBadGateway)
	assert.Equal(t, 1, calls)
}
