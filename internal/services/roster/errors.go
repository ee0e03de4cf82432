package roster

// RosterError is a custom error type for player pool errors
type RosterError string

// Error implements the error interface
func (e RosterError) Error() string {
	return string(e)
}

const (
	ErrEmptyName      RosterError = "player name cannot be empty"
	ErrEmptyChannel   RosterError = "channel ID cannot be empty"
	ErrPlayerNotFound RosterError = "player not found"
	ErrNilConfig      RosterError = "config cannot be nil"
	ErrNilRosterRepo  RosterError = "roster repository cannot be nil"
)
