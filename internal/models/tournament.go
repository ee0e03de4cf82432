package models

import (
	"time"
)

// TournamentStatus represents the current state of a tournament
type TournamentStatus string

const (
	// TournamentStatusActive indicates rounds are still being played
	TournamentStatusActive TournamentStatus = "active"

	// TournamentStatusFinished indicates the tournament has been closed
	TournamentStatusFinished TournamentStatus = "finished"
)

// Tournament represents one Mexicano tournament
type Tournament struct {
	// ID is the opaque identifier assigned at creation
	ID string

	// ChannelID is the Discord channel the tournament is played from
	ChannelID string

	// MessageID is the ID of the round message in Discord
	MessageID string

	// Status is the current state of the tournament
	Status TournamentStatus

	// CurrentRound is the number of the round in progress, starting at 1
	CurrentRound int

	// Players is the canonical arrangement: playing players in match order
	// followed by the players sitting out
	Players []*Player

	// Courts are the court labels assigned to matches by position
	Courts []string

	// CreatedAt is when the tournament was created
	CreatedAt time.Time

	// UpdatedAt is when the tournament was last updated
	UpdatedAt time.Time
}

// IsActive reports whether rounds can still be played
func (t *Tournament) IsActive() bool {
	return t.Status == TournamentStatusActive
}
