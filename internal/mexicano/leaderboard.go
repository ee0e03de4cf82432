package mexicano

import (
	"cmp"
	"slices"

	"github.com/KirkDiggler/mexicano/internal/models"
)

// Rank orders players by points, then wins, then fewest losses, then draws.
// Remaining ties keep their input order. The input slice is not modified.
func Rank(players []*models.Player) []*models.Player {
	ranked := slices.Clone(players)
	slices.SortStableFunc(ranked, CompareStanding)
	return ranked
}

// CompareStanding returns a negative number when a ranks above b
func CompareStanding(a, b *models.Player) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Losses, b.Losses); c != 0 {
		return c
	}
	return cmp.Compare(b.Draws, a.Draws)
}
