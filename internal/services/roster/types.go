package roster

import (
	"log/slog"

	"github.com/KirkDiggler/mexicano/internal/models"
	rosterRepo "github.com/KirkDiggler/mexicano/internal/repositories/roster"
)

// Config holds configuration for the roster service
type Config struct {
	RosterRepo rosterRepo.Repository

	// Logger, slog.Default() when nil
	Logger *slog.Logger
}

// AddPlayerInput contains parameters for adding a player
type AddPlayerInput struct {
	ChannelID string
	Name      string
}

// AddPlayerOutput contains the stored player
type AddPlayerOutput struct {
	Player *models.Player

	// Renamed is set when the name was suffixed to stay unique
	Renamed bool
}

// RemovePlayerInput contains parameters for removing a player
type RemovePlayerInput struct {
	ChannelID string
	PlayerID  int
}

type RemovePlayerOutput struct{}

// ListPlayersInput contains parameters for listing the pool
type ListPlayersInput struct {
	ChannelID string
}

// ListPlayersOutput contains the pool
type ListPlayersOutput struct {
	Players []*models.Player
}

// ClearRosterInput contains parameters for clearing the pool
type ClearRosterInput struct {
	ChannelID string
}

type ClearRosterOutput struct{}
