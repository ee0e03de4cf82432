package mexicano

import (
	"fmt"

	"github.com/KirkDiggler/mexicano/internal/models"
)

// Match is four players on one court split into two teams
type Match struct {
	// Number is the 1-based position of the match in the round
	Number int

	// TeamA are the players at group positions 0 and 2
	TeamA Team

	// TeamB are the players at group positions 1 and 3
	TeamB Team
}

// Players returns the four players in positional order
func (m Match) Players() []*models.Player {
	return []*models.Player{m.TeamA[0], m.TeamB[0], m.TeamA[1], m.TeamB[1]}
}

// Teams returns the team on side and its opponents
func (m Match) Teams(side Side) (team, opponents Team, err error) {
	switch side {
	case SideA:
		return m.TeamA, m.TeamB, nil
	case SideB:
		return m.TeamB, m.TeamA, nil
	default:
		return Team{}, Team{}, fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
}

// Score returns the round points of each side
func (m Match) Score() (teamA, teamB int) {
	return m.TeamA[0].RoundPoints, m.TeamB[0].RoundPoints
}

// HasScore reports whether any player of the match has round points
func (m Match) HasScore() bool {
	for _, p := range m.Players() {
		if p.RoundPoints > 0 {
			return true
		}
	}
	return false
}

// IsDraw reports whether the match was scored 16-16
func (m Match) IsDraw() bool {
	a, b := m.Score()
	return a == SitoverPoints && b == SitoverPoints
}

// Partnership identifies two players who played on the same team
type Partnership [2]int

// NewPartnership keys a team independent of player order
func NewPartnership(t Team) Partnership {
	a, b := t[0].ID, t[1].ID
	if a > b {
		a, b = b, a
	}
	return Partnership{a, b}
}

// Partition groups ranked players four at a time and pairs the 1st with the
// 3rd and the 2nd with the 4th of each group. When a resulting team is listed
// in avoid, the group is re-paired 1st with 4th and 2nd with 3rd, unless that
// repeats a listed team as well.
func Partition(ranked []*models.Player, avoid map[Partnership]bool) ([]Match, error) {
	if len(ranked)%PlayersPerMatch != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPartitionSize, len(ranked))
	}

	matches := make([]Match, 0, len(ranked)/PlayersPerMatch)
	for i := 0; i < len(ranked); i += PlayersPerMatch {
		g := ranked[i : i+PlayersPerMatch]
		m := Match{
			Number: len(matches) + 1,
			TeamA:  Team{g[0], g[2]},
			TeamB:  Team{g[1], g[3]},
		}

		if repeatsPartnership(m, avoid) {
			alt := Match{
				Number: m.Number,
				TeamA:  Team{g[0], g[3]},
				TeamB:  Team{g[1], g[2]},
			}
			if !repeatsPartnership(alt, avoid) {
				m = alt
			}
		}

		matches = append(matches, m)
	}

	return matches, nil
}

// Flatten lays matches back out in positional order
func Flatten(matches []Match) []*models.Player {
	players := make([]*models.Player, 0, len(matches)*PlayersPerMatch)
	for _, m := range matches {
		players = append(players, m.Players()...)
	}
	return players
}

func repeatsPartnership(m Match, avoid map[Partnership]bool) bool {
	if len(avoid) == 0 {
		return false
	}
	return avoid[NewPartnership(m.TeamA)] || avoid[NewPartnership(m.TeamB)]
}
