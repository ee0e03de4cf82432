package mexicano

import (
	"slices"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/KirkDiggler/mexicano/internal/random"
)

// SitoverCount is how many of n players cannot be placed on a court
func SitoverCount(n int) int {
	return n % PlayersPerMatch
}

// SelectSitovers picks who sits out the next round. Only players that have
// sat out the fewest times are eligible; among them the pick is uniform.
// When fewer players are eligible than must sit out, all of them sit and the
// remaining places are drawn uniformly from everyone else. Widening to a
// uniform draw over the whole list would let a player sit out twice before
// others sit once; seating the whole eligible pool first keeps the spread of
// sit-out counts at most one.
func SelectSitovers(src random.Source, ranked []*models.Player) []*models.Player {
	required := SitoverCount(len(ranked))
	if required == 0 {
		return []*models.Player{}
	}

	minSatOut := ranked[0].TimesSatOut
	for _, p := range ranked[1:] {
		minSatOut = min(minSatOut, p.TimesSatOut)
	}

	eligible := make([]*models.Player, 0, len(ranked))
	rest := make([]*models.Player, 0, len(ranked))
	for _, p := range ranked {
		if p.TimesSatOut == minSatOut {
			eligible = append(eligible, p)
		} else {
			rest = append(rest, p)
		}
	}

	shuffle(src, eligible)
	if len(eligible) >= required {
		return eligible[:required]
	}

	shuffle(src, rest)
	return append(eligible, rest[:required-len(eligible)]...)
}

func shuffle(src random.Source, players []*models.Player) {
	src.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})
}

// InitialArrangement shuffles the pool for round one. The trailing
// SitoverCount players sit out first and have TimesSatOut incremented.
// The returned order is the playing players followed by the sitovers.
func InitialArrangement(src random.Source, players []*models.Player) (ordered, sitovers []*models.Player) {
	ordered = slices.Clone(players)
	shuffle(src, ordered)

	sitovers = ordered[len(ordered)-SitoverCount(len(ordered)):]
	for _, p := range sitovers {
		p.TimesSatOut++
	}

	return ordered, sitovers
}
