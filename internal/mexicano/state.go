package mexicano

import (
	"fmt"

	"github.com/KirkDiggler/mexicano/internal/models"
)

// State is one tournament's round in progress. Players holds the canonical
// arrangement: playing players in match order, then the sitovers.
type State struct {
	Round   int
	Players []*models.Player
}

// NewState wraps a stored arrangement
func NewState(round int, players []*models.Player) *State {
	return &State{
		Round:   round,
		Players: players,
	}
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	return &State{
		Round:   s.Round,
		Players: models.ClonePlayers(s.Players),
	}
}

func (s *State) playing() []*models.Player {
	return s.Players[:len(s.Players)-SitoverCount(len(s.Players))]
}

// Matches derives the round's matches from the arrangement
func (s *State) Matches() []Match {
	// playing() is always a multiple of four
	matches, _ := Partition(s.playing(), nil)
	return matches
}

// Sitovers are the players not on a court this round
func (s *State) Sitovers() []*models.Player {
	return s.Players[len(s.Players)-SitoverCount(len(s.Players)):]
}

// Match returns the match with the given 1-based number
func (s *State) Match(number int) (Match, error) {
	matches := s.Matches()
	if number < 1 || number > len(matches) {
		return Match{}, fmt.Errorf("%w: %d", ErrMatchNotFound, number)
	}
	return matches[number-1], nil
}

// ApplyScore records points for one side of a match
func (s *State) ApplyScore(matchNumber int, side Side, points int) error {
	m, err := s.Match(matchNumber)
	if err != nil {
		return err
	}
	team, opponents, err := m.Teams(side)
	if err != nil {
		return err
	}
	return ApplyScore(team, opponents, points)
}

// ResetScore clears a match's score
func (s *State) ResetScore(matchNumber int) error {
	m, err := s.Match(matchNumber)
	if err != nil {
		return err
	}
	ResetScore(m.TeamA, m.TeamB)
	return nil
}

// ReadyToAdvance reports whether every match has a score. A round with no
// matches is ready when somebody is sitting out.
func (s *State) ReadyToAdvance() bool {
	matches := s.Matches()
	if len(matches) == 0 {
		return len(s.Sitovers()) > 0
	}
	for _, m := range matches {
		if !m.HasScore() {
			return false
		}
	}
	return true
}

func (s *State) drawnPartnerships() map[Partnership]bool {
	drawn := make(map[Partnership]bool)
	for _, m := range s.Matches() {
		if m.IsDraw() {
			drawn[NewPartnership(m.TeamA)] = true
			drawn[NewPartnership(m.TeamB)] = true
		}
	}
	return drawn
}

func (s *State) snapshot() *models.RoundSnapshot {
	snap := &models.RoundSnapshot{
		Round:    s.Round,
		Matches:  make([][]*models.Player, 0),
		Sitovers: models.ClonePlayers(s.Sitovers()),
	}
	for _, m := range s.Matches() {
		snap.Matches = append(snap.Matches, models.ClonePlayers(m.Players()))
	}
	return snap
}
