package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(65536), cfg.ReadLimit)
	assert.Equal(t, 32, cfg.SendBuffer)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.PongWait)
	assert.Equal(t, 5*time.Second, cfg.WriteWait)
	assert.Equal(t, 0, cfg.MsgRateLimit, "rate limiting is off unless configured")
	assert.Less(t, cfg.PingPeriod, cfg.PongWait, "pings must fire before the pong deadline")
}

func TestLoadMalformedFileReturnsError(t *testing.T) {
	t.Setenv("CONFIG_ENV", "broken")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg, "callers must not get a half-parsed config")
}
