package models

// Player represents a participant tracked across a whole tournament
type Player struct {
	// ID is assigned from the pool's counter and never reused
	ID int

	// Name is the display name, unique within a tournament
	Name string

	// Points is the sum of all finalized round points
	Points int

	// Wins is the number of rounds won
	Wins int

	// Losses is the number of rounds lost
	Losses int

	// Draws is the number of rounds drawn
	Draws int

	// RoundPoints are the points earned in the round currently in progress
	RoundPoints int

	// CurrentRoundScore mirrors RoundPoints for display before finalization
	CurrentRoundScore int

	// TimesSatOut is the number of rounds this player did not play
	TimesSatOut int
}

// Clone returns a copy of the player
func (p *Player) Clone() *Player {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// ClonePlayers returns a deep copy of a player list
func ClonePlayers(players []*Player) []*Player {
	out := make([]*Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}
