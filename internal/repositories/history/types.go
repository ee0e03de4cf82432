package history

import "github.com/KirkDiggler/mexicano/internal/models"

// AppendSnapshotInput contains parameters for recording a round
type AppendSnapshotInput struct {
	Snapshot *models.RoundSnapshot
}

// GetHistoryInput contains parameters for reading a tournament's history
type GetHistoryInput struct {
	TournamentID string
}

// GetHistoryOutput contains the snapshots of a tournament
type GetHistoryOutput struct {
	Snapshots []*models.RoundSnapshot
}

// DeleteHistoryInput contains parameters for removing a tournament's history
type DeleteHistoryInput struct {
	TournamentID string
}
