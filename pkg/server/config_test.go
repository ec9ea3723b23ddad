package server

import (
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamkick/jamkick/pkg/cache"
)

func TestConfigDefaults(t *testing.T) {
	config := &Config{Redis: &cache.Config{}}
	require.NoError(t, defaults.Set(config))

	assert.Equal(t, "info", config.Logging)
	assert.Equal(t, ":9090", config.MetricsAddr)
	assert.Equal(t, ":8080", config.API.Addr)
	assert.Equal(t, "redis://localhost:6379", config.Redis.URL)
	assert.Equal(t, 10, config.Aggregator.PerPage)
	assert.Equal(t, 4, config.Aggregator.WindowMonths)
	assert.Equal(t, 168*time.Hour, config.Aggregator.HistoryTTL)
	assert.Equal(t, 168*time.Hour, config.Aggregator.EventsTTL)
	assert.Equal(t, 50, config.Events.PerPage)
	assert.Equal(t, 10*time.Second, config.History.Timeout)

	require.NoError(t, config.Validate())
}

func TestConfigValidate(t *testing.T) {
	config := &Config{}
	require.NoError(t, defaults.Set(config))

	// Redis is a pointer so defaults cannot conjure it; it must be present.
	assert.ErrorIs(t, config.Validate(), ErrRedisConfigRequired)

	config.Redis = &cache.Config{URL: "redis://localhost:6379"}
	require.NoError(t, config.Validate())
}
