package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
)

func TestNewRepositories_Memory(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: config.DriverMemory}}

	repos, err := NewRepositories(cfg)
	require.NoError(t, err)
	assert.NotNil(t, repos.Tx)
	assert.NotNil(t, repos.Books)
	assert.NotNil(t, repos.Orders)
	assert.NoError(t, repos.Close())
}

func TestNewRepositories_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "sqlite"}}

	_, err := NewRepositories(cfg)
	assert.Error(t, err)
}
