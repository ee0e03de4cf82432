package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/KirkDiggler/mexicano/internal/mexicano"
	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/KirkDiggler/mexicano/internal/random"
	"github.com/KirkDiggler/mexicano/internal/services/tournament"
)

type options struct {
	Players             int
	Rounds              int
	Seed                int64
	AvoidRepeatPartners bool
}

type result struct {
	Rounds      int
	Leaderboard []*tournament.LeaderboardEntry

	// SitoutSpread is max(TimesSatOut) - min(TimesSatOut)
	SitoutSpread int
}

// simulate plays opts.Rounds rounds with random scores
func simulate(opts *options) (*result, error) {
	if opts.Players < 1 {
		return nil, errors.New("players must be at least 1")
	}
	if opts.Rounds < 0 {
		return nil, errors.New("rounds must not be negative")
	}

	rng := random.New(&random.Config{Seed: opts.Seed})
	advancer, err := mexicano.New(&mexicano.Config{
		Random:              rng,
		AvoidRepeatPartners: opts.AvoidRepeatPartners,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create advancer: %w", err)
	}

	players := make([]*models.Player, opts.Players)
	for i := range players {
		players[i] = &models.Player{
			ID:   i + 1,
			Name: fmt.Sprintf("Player %d", i+1),
		}
	}

	state := advancer.Start(players)
	for round := 0; round < opts.Rounds; round++ {
		for _, match := range state.Matches() {
			if err := state.ApplyScore(match.Number, mexicano.SideA, rng.Intn(mexicano.MatchPoints+1)); err != nil {
				return nil, fmt.Errorf("failed to score round %d: %w", state.Round, err)
			}
		}

		state, _, err = advancer.Advance(state)
		if err != nil {
			return nil, fmt.Errorf("failed to advance round %d: %w", round+1, err)
		}
	}

	return &result{
		Rounds:       opts.Rounds,
		Leaderboard:  tournament.Standings(state.Players),
		SitoutSpread: sitoutSpread(state.Players),
	}, nil
}

func sitoutSpread(players []*models.Player) int {
	if len(players) == 0 {
		return 0
	}
	lo, hi := players[0].TimesSatOut, players[0].TimesSatOut
	for _, p := range players[1:] {
		lo = min(lo, p.TimesSatOut)
		hi = max(hi, p.TimesSatOut)
	}
	return hi - lo
}

func (r *result) print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tPlayer\tPoints\tW\tL\tD\tSat out\n")
	for _, entry := range r.Leaderboard {
		p := entry.Player
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\n",
			entry.Position, p.Name, p.Points, p.Wins, p.Losses, p.Draws, p.TimesSatOut)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d rounds, sit-out spread %d\n", r.Rounds, r.SitoutSpread)
	return err
}
