package mexicano

import (
	"testing"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRank_TieBreaks(t *testing.T) {
	players := []*models.Player{
		{ID: 1, Points: 40, Wins: 1, Losses: 1, Draws: 0},
		{ID: 2, Points: 48, Wins: 1, Losses: 1, Draws: 0},
		{ID: 3, Points: 40, Wins: 2, Losses: 0, Draws: 0},
		{ID: 4, Points: 40, Wins: 1, Losses: 0, Draws: 1},
		{ID: 5, Points: 40, Wins: 1, Losses: 0, Draws: 0},
		{ID: 6, Points: 40, Wins: 1, Losses: 1, Draws: 0},
	}

	ranked := Rank(players)

	// 2 on points, 3 on wins, 4 and 5 on fewer losses with 4 ahead on draws,
	// 1 and 6 tied and kept in input order
	assert.Equal(t, []int{2, 3, 4, 5, 1, 6}, ids(ranked))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(players), "input must not be reordered")
}

func TestRank_Idempotent(t *testing.T) {
	players := newPlayers(9)
	for i, p := range players {
		p.Points = (i * 7) % 5 * 16
		p.Wins = i % 3
	}

	once := Rank(players)
	twice := Rank(once)

	assert.Equal(t, ids(once), ids(twice))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}
