package roster

import "context"

// Service manages the pool of players a channel starts tournaments from
type Service interface {
	// AddPlayer adds a player, suffixing the name when it is already taken
	AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error)

	// RemovePlayer takes a player out of the pool
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error)

	// ListPlayers returns the pool in the order players joined
	ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error)

	// ClearRoster empties the pool and restarts player numbering
	ClearRoster(ctx context.Context, input *ClearRosterInput) (*ClearRosterOutput, error)
}
