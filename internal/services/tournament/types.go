package tournament

import (
	"log/slog"

	"github.com/KirkDiggler/mexicano/internal/common/clock"
	"github.com/KirkDiggler/mexicano/internal/common/uuid"
	"github.com/KirkDiggler/mexicano/internal/metrics"
	"github.com/KirkDiggler/mexicano/internal/mexicano"
	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/KirkDiggler/mexicano/internal/notifier"
	"github.com/KirkDiggler/mexicano/internal/random"
	historyRepo "github.com/KirkDiggler/mexicano/internal/repositories/history"
	rosterRepo "github.com/KirkDiggler/mexicano/internal/repositories/roster"
	tournamentRepo "github.com/KirkDiggler/mexicano/internal/repositories/tournament"
)

// Config holds configuration for the tournament service
type Config struct {
	// Courts are the default court labels for new tournaments
	Courts []string

	// MinPlayers is the smallest pool a tournament can start with
	MinPlayers int

	// AvoidRepeatPartners splits teams that drew together last round
	AvoidRepeatPartners bool

	// Repository dependencies
	TournamentRepo tournamentRepo.Repository
	RosterRepo     rosterRepo.Repository
	HistoryRepo    historyRepo.Repository

	// Service dependencies
	Publisher     notifier.Publisher
	Metrics       metrics.Recorder
	Random        random.Source
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	Logger        *slog.Logger
}

// Match is one court of the current round
type Match struct {
	// Number is the 1-based match number used when submitting scores
	Number int

	// Court is the label of the court the match is played on
	Court string

	TeamA [2]*models.Player
	TeamB [2]*models.Player

	// ScoreA and ScoreB are the submitted points, zero until scored
	ScoreA int
	ScoreB int

	// Scored is set once either side has points
	Scored bool
}

// Round is the current round of a tournament
type Round struct {
	Number   int
	Matches  []*Match
	Sitovers []*models.Player

	// ReadyToAdvance is set when every match has a score
	ReadyToAdvance bool
}

// LeaderboardEntry is one line of the standings
type LeaderboardEntry struct {
	// Position is shared by players tied on every criterion
	Position int
	Player   *models.Player
}

// CreateTournamentInput contains parameters for starting a tournament
type CreateTournamentInput struct {
	ChannelID string

	// Players overrides the channel's roster when set
	Players []*models.Player

	// Courts overrides the configured court labels when set
	Courts []string
}

// CreateTournamentOutput contains the new tournament and its first round
type CreateTournamentOutput struct {
	Tournament *models.Tournament
	Round      *Round
}

type GetTournamentInput struct {
	TournamentID string
}

type GetTournamentByChannelInput struct {
	ChannelID string
}

type GetTournamentOutput struct {
	Tournament *models.Tournament
}

// ListTournamentsInput selects tournaments by status, active when empty
type ListTournamentsInput struct {
	Status models.TournamentStatus
}

type ListTournamentsOutput struct {
	Tournaments []*models.Tournament
}

// SubmitScoreInput contains the points one side of a match scored
type SubmitScoreInput struct {
	TournamentID string
	MatchNumber  int
	Side         mexicano.Side
	Points       int
}

type SubmitScoreOutput struct {
	Tournament *models.Tournament
	Match      *Match

	// ReadyToAdvance is set when this score completed the round
	ReadyToAdvance bool
}

type ResetScoreInput struct {
	TournamentID string
	MatchNumber  int
}

type ResetScoreOutput struct {
	Tournament *models.Tournament
	Match      *Match
}

type AdvanceRoundInput struct {
	TournamentID string
}

// AdvanceRoundOutput contains the result of advancing. When Advanced is
// false some match had no score and nothing changed.
type AdvanceRoundOutput struct {
	Advanced   bool
	Tournament *models.Tournament
	Round      *Round

	// Completed is the snapshot of the round that was just finalized
	Completed *models.RoundSnapshot

	// Pending lists the numbers of matches still missing a score
	Pending []int
}

type FinishTournamentInput struct {
	TournamentID string
}

type FinishTournamentOutput struct {
	Tournament  *models.Tournament
	Leaderboard []*LeaderboardEntry
}

type GetLeaderboardInput struct {
	TournamentID string
}

type GetLeaderboardOutput struct {
	Tournament *models.Tournament
	Entries    []*LeaderboardEntry
}

type GetHistoryInput struct {
	TournamentID string
}

type GetHistoryOutput struct {
	Snapshots []*models.RoundSnapshot
}

type GetRoundInput struct {
	TournamentID string
}

type GetRoundOutput struct {
	Tournament *models.Tournament
	Round      *Round
}

type SetMessageIDInput struct {
	TournamentID string
	MessageID    string
}
