package mexicano

// PairingError is a custom error type for round and scoring errors
type PairingError string

// Error implements the error interface
func (e PairingError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidScore         PairingError = "score must be between 0 and 32"
	ErrInvalidPartitionSize PairingError = "player count must be a multiple of four"
	ErrPrematureAdvance     PairingError = "round is not ready to advance"
	ErrMatchNotFound        PairingError = "match not found"
	ErrInvalidSide          PairingError = "invalid team side"
	ErrInvalidTeam          PairingError = "team must have two players"
	ErrNilConfig            PairingError = "config cannot be nil"
	ErrNilRandom            PairingError = "random source cannot be nil"
)
