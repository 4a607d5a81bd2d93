package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/pocket-arena/internal/catalog"
	"github.com/ericogr/pocket-arena/internal/engine"
)

func loadSimConfig(t *testing.T, level int, catch bool) simConfig {
	t.Helper()
	cat, err := catalog.Load("../../data/catalog.yaml")
	require.NoError(t, err)
	player, err := cat.Species("cindercub")
	require.NoError(t, err)
	wild, err := cat.Species("rattle")
	require.NoError(t, err)
	return simConfig{player: player, wild: wild, level: level, catch: catch}
}

func TestSimulateFinishesEveryBattle(t *testing.T) {
	cfg := loadSimConfig(t, 12, false)
	tl := newTally()
	for i := uint64(0); i < 25; i++ {
		outcome, rounds, err := simulate(cfg, 42, i)
		require.NoError(t, err)
		assert.Contains(t, []engine.Outcome{engine.OutcomeWon, engine.OutcomeLost}, outcome)
		assert.Positive(t, rounds)
		tl.add(outcome, rounds)
	}
	assert.Equal(t, 25, tl.battles)
	assert.Positive(t, tl.meanRounds())
}

func TestSimulateIsReproducible(t *testing.T) {
	cfg := loadSimConfig(t, 8, true)
	o1, r1, err := simulate(cfg, 7, 3)
	require.NoError(t, err)
	o2, r2, err := simulate(cfg, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, o1, o2)
	assert.Equal(t, r1, r2)
}
