package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/mexicano/internal/repositories/history Repository

import (
	"context"
)

// Repository defines the interface for the append-only log of completed rounds
type Repository interface {
	// AppendSnapshot adds a completed round to a tournament's history
	AppendSnapshot(ctx context.Context, input *AppendSnapshotInput) error

	// GetHistory retrieves every snapshot of a tournament in round order
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// DeleteHistory removes a tournament's history
	DeleteHistory(ctx context.Context, input *DeleteHistoryInput) error
}
