package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_Length(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateOTP(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
	}
}

func TestGenerateOTP_DigitsOnly(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTP(6)
		require.NoError(t, err)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "unexpected character %q in %s", c, code)
		}
	}
}

func TestGenerateOTP_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateOTP(6)
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 six-digit codes colliding into a single value would mean a broken
	// random source.
	assert.Greater(t, len(seen), 1)
}
