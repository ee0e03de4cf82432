package models

import (
	"time"
)

// RoundSnapshot records how a completed round was played
type RoundSnapshot struct {
	// TournamentID is the tournament the round belongs to
	TournamentID string

	// Round is the round number
	Round int

	// Matches holds the four players of each match in positional order, so
	// positions 0 and 2 are one team and 1 and 3 the other, with their round
	// points as submitted
	Matches [][]*Player

	// Sitovers are the players that did not play the round
	Sitovers []*Player

	// CompletedAt is when the round was finalized
	CompletedAt time.Time
}
