package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/rulerush/internal/config"
)

func TestSimulateReportsGames(t *testing.T) {
	cfg := config.Default()
	cfg.Server.LogLevel = "error"
	var buf bytes.Buffer
	err := simulate(context.Background(), &buf, cfg, simOptions{games: 3, seed: 10, accuracy: 0.7, maxRounds: 60})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SEED")
	assert.Contains(t, out, "rulerush_game_rounds_total")
	assert.Contains(t, out, "rulerush_game_games_total")

	games, _, found := strings.Cut(out, "\nMETRIC")
	require.True(t, found)
	assert.Equal(t, 1+3, strings.Count(games, "\n"))
}

func TestSimulateRejectsNoGames(t *testing.T) {
	err := simulate(context.Background(), &bytes.Buffer{}, config.Default(), simOptions{})
	assert.Error(t, err)
}
