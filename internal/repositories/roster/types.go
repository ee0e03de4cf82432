package roster

import "github.com/KirkDiggler/mexicano/internal/models"

// NextPlayerIDInput contains parameters for allocating a player ID
type NextPlayerIDInput struct {
	ChannelID string
}

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	ChannelID string
	Player    *models.Player
}

// GetPlayersInput contains parameters for retrieving a pool
type GetPlayersInput struct {
	ChannelID string
}

// GetPlayersOutput contains the players of a pool
type GetPlayersOutput struct {
	Players []*models.Player
}

// RemovePlayerInput contains parameters for removing a player
type RemovePlayerInput struct {
	ChannelID string
	PlayerID  int
}

// ClearRosterInput contains parameters for clearing a pool
type ClearRosterInput struct {
	ChannelID string
}
