package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_SitoutSpreadStaysFair(t *testing.T) {
	for players := 4; players <= 14; players++ {
		res, err := simulate(&options{
			Players:             players,
			Rounds:              24,
			Seed:                42,
			AvoidRepeatPartners: true,
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, res.SitoutSpread, 1, "players=%d", players)
		assert.Len(t, res.Leaderboard, players)
	}
}

func TestSimulate_SameSeedSameResult(t *testing.T) {
	opts := &options{Players: 9, Rounds: 6, Seed: 7}

	a, err := simulate(opts)
	require.NoError(t, err)
	b, err := simulate(opts)
	require.NoError(t, err)

	for i := range a.Leaderboard {
		assert.Equal(t, a.Leaderboard[i].Player, b.Leaderboard[i].Player)
	}
}

func TestSimulate_Validation(t *testing.T) {
	_, err := simulate(&options{Players: 0, Rounds: 1})
	assert.Error(t, err)

	_, err = simulate(&options{Players: 4, Rounds: -1})
	assert.Error(t, err)
}

func TestResultPrint(t *testing.T) {
	// round one plus four advances seats each of the five players once
	res, err := simulate(&options{Players: 5, Rounds: 4, Seed: 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.print(&buf))
	assert.Contains(t, buf.String(), "Player 1")
	assert.Contains(t, buf.String(), "4 rounds, sit-out spread 0")

	// a fifth advance seats one player twice
	res, err = simulate(&options{Players: 5, Rounds: 5, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SitoutSpread)
}
