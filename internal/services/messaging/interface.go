package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetJoinMessage returns a message for a player joining the roster
	GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error)

	// GetRoundStartMessage returns the announcement for a new round
	GetRoundStartMessage(ctx context.Context, input *GetRoundStartMessageInput) (*GetRoundStartMessageOutput, error)

	// GetScoreMessage returns a comment on a submitted score
	GetScoreMessage(ctx context.Context, input *GetScoreMessageInput) (*GetScoreMessageOutput, error)

	// GetLeaderboardMessage returns a comment on a player's standing
	GetLeaderboardMessage(ctx context.Context, input *GetLeaderboardMessageInput) (*GetLeaderboardMessageOutput, error)

	// GetFinishMessage returns the closing announcement of a tournament
	GetFinishMessage(ctx context.Context, input *GetFinishMessageInput) (*GetFinishMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
