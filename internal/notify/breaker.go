package notify

import (
	"errors"
	"sync"
	"time"
)

const defaultCooldown = 60 * time.Second

var errBreakerOpen = errors.New("notify: breaker open, publish skipped")

// breaker stops hammering PubNub after consecutive publish failures.
// It opens after maxFailures in a row and closes again once the
// cooldown has passed.
type breaker struct {
	maxFailures int
	cooldown    time.Duration

	mu       sync.Mutex
	failures int
	openedAt time.Time
}

func newBreaker(maxFailures int, cooldown time.Duration) *breaker {
	return &breaker{maxFailures: maxFailures, cooldown: cooldown}
}

func (b *breaker) do(fn func() error) error {
	b.mu.Lock()
	if b.failures >= b.maxFailures {
		if time.Since(b.openedAt) < b.cooldown {
			b.mu.Unlock()
			return errBreakerOpen
		}
		// Cooldown over, allow a probe.
		b.failures = b.maxFailures - 1
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failures++
		if b.failures >= b.maxFailures {
			b.openedAt = time.Now()
		}
		return err
	}
	b.failures = 0
	return nil
}
