package messaging

import "github.com/KirkDiggler/mexicano/internal/random"

// MessagingError is a custom error type for messaging errors
type MessagingError string

// Error implements the error interface
func (e MessagingError) Error() string {
	return string(e)
}

const (
	ErrNilConfig MessagingError = "config cannot be nil"
	ErrNilRandom MessagingError = "random source cannot be nil"
	ErrNilInput  MessagingError = "input cannot be nil"
)

// ErrorType categorizes failures shown to players
type ErrorType string

const (
	ErrorTypeNoTournament      ErrorType = "no_tournament"
	ErrorTypeTournamentExists  ErrorType = "tournament_exists"
	ErrorTypeTournamentOver    ErrorType = "tournament_over"
	ErrorTypeNotEnoughPlayers  ErrorType = "not_enough_players"
	ErrorTypeInvalidScore      ErrorType = "invalid_score"
	ErrorTypeMatchNotFound     ErrorType = "match_not_found"
	ErrorTypeRoundNotFinished  ErrorType = "round_not_finished"
	ErrorTypePlayerNotFound    ErrorType = "player_not_found"
	ErrorTypeInvalidPlayerName ErrorType = "invalid_player_name"
	ErrorTypeUnknown           ErrorType = "unknown"
)

// Config holds configuration for the messaging service
type Config struct {
	// Random picks among message variants
	Random random.Source
}

// GetJoinMessageInput contains parameters for a join message
type GetJoinMessageInput struct {
	PlayerName string

	// RequestedName is the name asked for when it had to be suffixed
	RequestedName string

	PlayerCount int
}

type GetJoinMessageOutput struct {
	Message string
}

// GetRoundStartMessageInput contains parameters for a round announcement
type GetRoundStartMessageInput struct {
	RoundNumber  int
	MatchCount   int
	SitoverNames []string
}

type GetRoundStartMessageOutput struct {
	Title   string
	Message string
}

// GetScoreMessageInput describes a submitted match score
type GetScoreMessageInput struct {
	MatchNumber int
	TeamA       [2]string
	TeamB       [2]string
	ScoreA      int
	ScoreB      int

	// RoundComplete is set when this was the last score of the round
	RoundComplete bool
}

type GetScoreMessageOutput struct {
	Message string
}

// GetLeaderboardMessageInput describes a player's standing
type GetLeaderboardMessageInput struct {
	PlayerName   string
	Position     int
	TotalPlayers int
	Points       int
}

type GetLeaderboardMessageOutput struct {
	Message string
}

// GetFinishMessageInput describes a finished tournament
type GetFinishMessageInput struct {
	WinnerName string
	Rounds     int
	Players    int
}

type GetFinishMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for an error message
type GetErrorMessageInput struct {
	ErrorType ErrorType

	// Detail is appended when set
	Detail string
}

type GetErrorMessageOutput struct {
	Title   string
	Message string
}
