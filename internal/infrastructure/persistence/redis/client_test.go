package redis

import (
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{Redis: config.RedisConfig{
		Host:        mr.Host(),
		Port:        port,
		PoolSize:    4,
		DialTimeout: time.Second,
	}}
	client, err := NewClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, mr.Addr(), client.Options().Addr)
}

func TestNewClient_Unreachable(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 200 * time.Millisecond,
	}}

	start := time.Now()
	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestOptions(t *testing.T) {
	opts := options(config.RedisConfig{Host: "cache", Port: 6380, PoolSize: 5, MinIdleConns: 10})
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 5, opts.MinIdleConns)

	opts = options(config.RedisConfig{PoolSize: 0, MinIdleConns: 10})
	assert.Equal(t, 10, opts.MinIdleConns)

	assert.Equal(t, defaultPingTimeout, pingTimeout(config.RedisConfig{}))
	assert.Equal(t, time.Second, pingTimeout(config.RedisConfig{DialTimeout: time.Second}))
}
