package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSuspiciousUserAgent(t *testing.T) {
	cases := []struct {
		ua         string
		suspicious bool
	}{
		{"Mozilla/5.0 (X11; Linux x86_64)", false},
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", true},
		{"my-crawler/1.0", true},
		{"SpiderMonkey", true},
		{"price-SCRAPER", true},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.suspicious, isSuspiciousUserAgent(tc.ua), "ua=%q", tc.ua)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	ctx := context.Background()

	t.Run("first request starts the window", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		rl := NewRateLimiter(client, 2)

		mock.ExpectIncr("ratelimit:user:abc").SetVal(1)
		mock.ExpectExpire("ratelimit:user:abc", time.Minute).SetVal(true)

		allowed, err := rl.allow(ctx, "user:abc")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("over the limit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		rl := NewRateLimiter(client, 2)

		mock.ExpectIncr("ratelimit:user:abc").SetVal(3)

		allowed, err := rl.allow(ctx, "user:abc")
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis failure fails open", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		rl := NewRateLimiter(client, 2)

		mock.ExpectIncr("ratelimit:10.0.0.1").SetErr(errors.New("connection refused"))

		allowed, err := rl.allow(ctx, "10.0.0.1")
		assert.Error(t, err)
		assert.True(t, allowed)
	})
}
