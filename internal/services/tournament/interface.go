package tournament

import "context"

// Service defines the interface for running Mexicano tournaments
type Service interface {
	// CreateTournament starts a tournament from a channel's roster
	CreateTournament(ctx context.Context, input *CreateTournamentInput) (*CreateTournamentOutput, error)

	// GetTournament retrieves a tournament by ID
	GetTournament(ctx context.Context, input *GetTournamentInput) (*GetTournamentOutput, error)

	// GetTournamentByChannel retrieves the active tournament of a channel
	GetTournamentByChannel(ctx context.Context, input *GetTournamentByChannelInput) (*GetTournamentOutput, error)

	// ListTournaments retrieves tournaments by status
	ListTournaments(ctx context.Context, input *ListTournamentsInput) (*ListTournamentsOutput, error)

	// SubmitScore records the points of one side of a match
	SubmitScore(ctx context.Context, input *SubmitScoreInput) (*SubmitScoreOutput, error)

	// ResetScore clears a match's score before the round is finalized
	ResetScore(ctx context.Context, input *ResetScoreInput) (*ResetScoreOutput, error)

	// AdvanceRound finalizes the current round and sets up the next one
	AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error)

	// FinishTournament closes a tournament
	FinishTournament(ctx context.Context, input *FinishTournamentInput) (*FinishTournamentOutput, error)

	// GetLeaderboard returns the standings
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetHistory returns every completed round
	GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error)

	// GetRound returns the matches and sitovers of the current round
	GetRound(ctx context.Context, input *GetRoundInput) (*GetRoundOutput, error)

	// SetMessageID remembers the chat message showing the tournament
	SetMessageID(ctx context.Context, input *SetMessageIDInput) error
}
