package mexicano

import (
	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/KirkDiggler/mexicano/internal/random"
)

// Config holds configuration for the round advancer
type Config struct {
	// Random picks the initial arrangement and the sitovers
	Random random.Source

	// AvoidRepeatPartners re-pairs a group when a team drew together last round
	AvoidRepeatPartners bool
}

// Advancer moves tournaments from one round to the next
type Advancer struct {
	random       random.Source
	avoidRepeats bool
}

// New creates a new round advancer
func New(cfg *Config) (*Advancer, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	return &Advancer{
		random:       cfg.Random,
		avoidRepeats: cfg.AvoidRepeatPartners,
	}, nil
}

// Start builds round one from a fresh pool. The input players are copied.
func (a *Advancer) Start(players []*models.Player) *State {
	ordered, _ := InitialArrangement(a.random, models.ClonePlayers(players))
	return NewState(1, ordered)
}

// Advance finalizes the round in s and arranges the next one. It returns a
// new state and a snapshot of the finished round; s itself is not modified.
// When s is not ready to advance it is returned as is with ErrPrematureAdvance.
func (a *Advancer) Advance(s *State) (*State, *models.RoundSnapshot, error) {
	if s == nil || !s.ReadyToAdvance() {
		return s, nil, ErrPrematureAdvance
	}

	snap := s.snapshot()

	var avoid map[Partnership]bool
	if a.avoidRepeats {
		avoid = s.drawnPartnerships()
	}

	next := s.Clone()
	sittingOut := make(map[int]bool)
	for _, p := range next.Sitovers() {
		sittingOut[p.ID] = true
	}
	Finalize(next.Players, sittingOut)

	ranked := Rank(next.Players)
	sitovers := SelectSitovers(a.random, ranked)

	selected := make(map[int]bool, len(sitovers))
	for _, p := range sitovers {
		p.TimesSatOut++
		selected[p.ID] = true
	}

	playing := make([]*models.Player, 0, len(ranked)-len(sitovers))
	for _, p := range ranked {
		if !selected[p.ID] {
			playing = append(playing, p)
		}
	}

	matches, err := Partition(playing, avoid)
	if err != nil {
		return s, nil, err
	}

	next.Players = append(Flatten(matches), sitovers...)
	next.Round++

	return next, snap, nil
}
