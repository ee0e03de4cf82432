package notifier

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/KirkDiggler/mexicano/internal/notifier Publisher

import (
	"context"
)

// Publisher broadcasts tournament changes
type Publisher interface {
	// Publish sends an event to every subscriber of its tournament
	Publish(ctx context.Context, input *PublishInput) error
}

// Subscriber listens for tournament changes
type Subscriber interface {
	// Subscribe starts receiving events. An empty tournament ID subscribes
	// to every tournament.
	Subscribe(ctx context.Context, input *SubscribeInput) (*Subscription, error)
}
