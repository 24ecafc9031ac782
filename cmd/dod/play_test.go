package main

import (
	"path/filepath"
	"testing"

	"github.com/hmtavares/dod-trainer/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaySettingsLogFlags(t *testing.T) {
	t.Parallel()
	c := &PlayCmd{
		Players:  4,
		Config:   filepath.Join(t.TempDir(), "missing.hcl"),
		LogFile:  "practice",
		LogLevel: "DEBUG",
	}

	cfg, err := c.settings()
	require.NoError(t, err)
	assert.Equal(t, "practice", cfg.Log.Prefix)
	assert.Empty(t, cfg.Log.File, "the flag is a prefix, not a fixed name")
	assert.Equal(t, "DEBUG", cfg.Log.Level)

	c.LogLevel = "WARNING"
	_, err = c.settings()
	assert.NoError(t, err)
}

func TestPlaySettingsRejects(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "missing.hcl")

	_, err := (&PlayCmd{Config: missing}).settings()
	assert.ErrorIs(t, err, game.ErrInvalidPlayerCount)

	_, err = (&PlayCmd{Config: missing, Players: 7}).settings()
	assert.ErrorIs(t, err, game.ErrInvalidPlayerCount)

	_, err = (&PlayCmd{Config: missing, Players: 4, LogLevel: "loud"}).settings()
	assert.Error(t, err)
}
