package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.Engine, "sqlite")
	assert.Equal(t, c.DatabaseDSN, "file:sqlrecord_demo?mode=memory&cache=shared")
	assert.Equal(t, c.Rows, 25)
	assert.Equal(t, c.BatchSize, 10)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.Engine, "sqlite")
	assert.Equal(t, c.DatabaseDSN, "file:sqlrecord_demo?mode=memory&cache=shared")
	assert.Equal(t, c.Rows, 25)
	assert.Equal(t, c.BatchSize, 10)
}
