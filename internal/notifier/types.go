package notifier

import (
	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/redis/go-redis/v9"
)

// EventType names a tournament change
type EventType string

const (
	// EventNewTournament is sent when a tournament is created
	EventNewTournament EventType = "NEW_TOURNAMENT"

	// EventUpdateTournament is sent on every score or round change
	EventUpdateTournament EventType = "UPDATE_TOURNAMENT"

	// EventFinishTournament is sent when a tournament is closed
	EventFinishTournament EventType = "FINISH_TOURNAMENT"
)

// Event is the message delivered to subscribers
type Event struct {
	Type         EventType          `json:"type"`
	TournamentID string             `json:"tournamentId"`
	Payload      *models.Tournament `json:"payload"`
}

// PublishInput contains the event to broadcast
type PublishInput struct {
	Event *Event
}

// SubscribeInput selects which tournament to follow
type SubscribeInput struct {
	TournamentID string
}

// Subscription delivers events until it is closed or its context ends
type Subscription struct {
	// Events is closed when the subscription ends
	Events <-chan *Event

	pubsub *redis.PubSub
}

// Close ends the subscription
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}
