package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	b := newBreaker(3, time.Minute)

	calls := 0
	err := b.do(func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := newBreaker(3, time.Minute)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		err := b.do(func() error { return boom })
		assert.ErrorIs(t, err, boom)
	}

	calls := 0
	err := b.do(func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, errBreakerOpen)
	assert.Equal(t, 0, calls, "open breaker must not invoke the publish")
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := newBreaker(2, time.Minute)
	boom := errors.New("boom")

	require.Error(t, b.do(func() error { return boom }))
	require.NoError(t, b.do(func() error { return nil }))
	require.Error(t, b.do(func() error { return boom }))

	// Only one consecutive failure, breaker still closed.
	err := b.do(func() error { return nil })
	assert.NoError(t, err)
}

func TestBreaker_ProbesAfterCooldown(t *testing.T) {
	b := newBreaker(1, 10*time.Millisecond)
	boom := errors.New("boom")

	require.Error(t, b.do(func() error { return boom }))
	assert.ErrorIs(t, b.do(func() error { return nil }), errBreakerOpen)

	time.Sleep(20 * time.Millisecond)

	err := b.do(func() error { return nil })
	assert.NoError(t, err, "breaker should probe after cooldown")
}
