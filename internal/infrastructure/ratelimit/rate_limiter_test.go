package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowBurstThenDeny(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, wait := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "keys are limited independently")
}

func TestCleanupDropsIdleKeys(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Allow("a")
	rl.Allow("b")
	assert.Equal(t, 2, rl.size())

	rl.idle = 0
	time.Sleep(time.Millisecond)
	rl.Cleanup()
	assert.Equal(t, 0, rl.size())
}
