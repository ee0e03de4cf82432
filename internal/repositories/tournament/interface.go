package tournament

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mexicano/internal/repositories/tournament Repository

import (
	"context"

	"github.com/KirkDiggler/mexicano/internal/models"
)

// Repository defines the interface for tournament persistence
type Repository interface {
	// SaveTournament persists a tournament and maintains its indexes
	SaveTournament(ctx context.Context, input *SaveTournamentInput) error

	// GetTournament retrieves a tournament by ID
	GetTournament(ctx context.Context, input *GetTournamentInput) (*models.Tournament, error)

	// GetTournamentByChannel retrieves the active tournament of a channel
	GetTournamentByChannel(ctx context.Context, input *GetTournamentByChannelInput) (*models.Tournament, error)

	// DeleteTournament removes a tournament
	DeleteTournament(ctx context.Context, input *DeleteTournamentInput) error

	// ListTournaments retrieves tournaments with a given status
	ListTournaments(ctx context.Context, input *ListTournamentsInput) (*ListTournamentsOutput, error)
}
