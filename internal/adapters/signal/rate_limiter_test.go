package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMessageRateLimiterWindow(t *testing.T) {
	rl := NewMessageRateLimiter(2, 100*time.Millisecond)

	assert.True(t, rl.Allow("p1"))
	assert.True(t, rl.Allow("p1"))
	assert.False(t, rl.Allow("p1"))

	// A different participant has its own window.
	assert.True(t, rl.Allow("p2"))

	time.Sleep(120 * time.Millisecond)
	assert.True(t, rl.Allow("p1"))
}

func TestMessageRateLimiterForget(t *testing.T) {
	rl := NewMessageRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("p1"))
	assert.False(t, rl.Allow("p1"))

	rl.Forget("p1")
	assert.True(t, rl.Allow("p1"))
}
