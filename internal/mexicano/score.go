package mexicano

import (
	"fmt"

	"github.com/KirkDiggler/mexicano/internal/models"
)

const (
	// MatchPoints is the total awarded across both teams of one match
	MatchPoints = 32

	// SitoverPoints is the flat award for a player sitting out a round
	SitoverPoints = MatchPoints / 2

	// PlayersPerMatch is the number of players on a court
	PlayersPerMatch = 4
)

// Side identifies one of the two teams of a match
type Side string

const (
	// SideA is the team formed by positions 0 and 2 of a match group
	SideA Side = "a"

	// SideB is the team formed by positions 1 and 3 of a match group
	SideB Side = "b"
)

// Team is two players playing together for one match
type Team [2]*models.Player

func (t Team) valid() bool {
	return t[0] != nil && t[1] != nil && t[0].ID != t[1].ID
}

// Outcome is how a round ended for one player
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeDraw
	OutcomeLoss
)

// ValidateScore checks a team score is within [0, MatchPoints]
func ValidateScore(points int) error {
	if points < 0 || points > MatchPoints {
		return fmt.Errorf("%w: got %d", ErrInvalidScore, points)
	}
	return nil
}

// ApplyScore gives teamPoints to both players of team and the remainder of
// MatchPoints to both opponents. Outcomes are only decided when the round is
// finalized, so a score can be re-entered any number of times.
func ApplyScore(team, opponents Team, teamPoints int) error {
	if err := ValidateScore(teamPoints); err != nil {
		return err
	}
	if !team.valid() || !opponents.valid() {
		return ErrInvalidTeam
	}

	for _, p := range team {
		p.RoundPoints = teamPoints
		p.CurrentRoundScore = teamPoints
	}
	for _, p := range opponents {
		p.RoundPoints = MatchPoints - teamPoints
		p.CurrentRoundScore = MatchPoints - teamPoints
	}

	return nil
}

// ResetScore clears the round points of all four players of a match
func ResetScore(team, opponents Team) {
	for _, p := range append(team[:], opponents[:]...) {
		if p == nil {
			continue
		}
		p.RoundPoints = 0
		p.CurrentRoundScore = 0
	}
}

// ResolveOutcome classifies the round points of a player who played.
// Anything under half the match points is a loss, including a 0-32 shutout.
func ResolveOutcome(points int) Outcome {
	switch {
	case points > SitoverPoints:
		return OutcomeWin
	case points == SitoverPoints:
		return OutcomeDraw
	default:
		return OutcomeLoss
	}
}

// Finalize folds the round into cumulative stats. Players whose ID is in
// sittingOut get SitoverPoints and no win, draw or loss.
func Finalize(players []*models.Player, sittingOut map[int]bool) {
	for _, p := range players {
		if sittingOut[p.ID] {
			p.Points += SitoverPoints
		} else {
			p.Points += p.RoundPoints
			switch ResolveOutcome(p.RoundPoints) {
			case OutcomeWin:
				p.Wins++
			case OutcomeDraw:
				p.Draws++
			case OutcomeLoss:
				p.Losses++
			}
		}
		p.RoundPoints = 0
		p.CurrentRoundScore = 0
	}
}
