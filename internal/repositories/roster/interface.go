package roster

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mexicano/internal/repositories/roster Repository

import (
	"context"
)

// Repository defines the interface for the player pool of a channel
type Repository interface {
	// NextPlayerID returns the next identifier from the channel's counter
	NextPlayerID(ctx context.Context, input *NextPlayerIDInput) (int, error)

	// SavePlayer adds or replaces a player in the pool
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayers retrieves the pool ordered by player ID
	GetPlayers(ctx context.Context, input *GetPlayersInput) (*GetPlayersOutput, error)

	// RemovePlayer removes one player from the pool
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) error

	// ClearRoster removes every player and resets the counter
	ClearRoster(ctx context.Context, input *ClearRosterInput) error
}
