package mexicano

import (
	"fmt"
	"testing"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/stretchr/testify/require"
)

func newPlayers(n int) []*models.Player {
	players := make([]*models.Player, n)
	for i := range players {
		players[i] = &models.Player{
			ID:   i + 1,
			Name: fmt.Sprintf("Player %d", i+1),
		}
	}
	return players
}

func ids(players []*models.Player) []int {
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.ID
	}
	return out
}

func scoreAll(t *testing.T, s *State, points int) {
	t.Helper()
	for _, m := range s.Matches() {
		require.NoError(t, s.ApplyScore(m.Number, SideA, points), "match %d", m.Number)
	}
}
