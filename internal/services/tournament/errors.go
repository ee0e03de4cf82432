package tournament

// TournamentError is a custom error type for tournament errors
type TournamentError string

// Error implements the error interface
func (e TournamentError) Error() string {
	return string(e)
}

const (
	ErrTournamentNotFound      TournamentError = "tournament not found"
	ErrTournamentAlreadyExists TournamentError = "an active tournament already exists for this channel"
	ErrTournamentFinished      TournamentError = "tournament is finished"
	ErrNotEnoughPlayers        TournamentError = "not enough players to start a tournament"
	ErrInvalidPlayers          TournamentError = "players must have distinct positive IDs"
	ErrEmptyChannel            TournamentError = "channel ID cannot be empty"
	ErrEmptyTournamentID       TournamentError = "tournament ID cannot be empty"
	ErrNilConfig               TournamentError = "config cannot be nil"
	ErrNilTournamentRepo       TournamentError = "tournament repository cannot be nil"
	ErrNilRosterRepo           TournamentError = "roster repository cannot be nil"
	ErrNilHistoryRepo          TournamentError = "history repository cannot be nil"
	ErrNilPublisher            TournamentError = "publisher cannot be nil"
	ErrNilRandom               TournamentError = "random source cannot be nil"
	ErrNilClock                TournamentError = "clock cannot be nil"
	ErrNilUUIDGenerator        TournamentError = "UUID generator cannot be nil"
)
