package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "tournament_events:"

	// subscribers that fall this far behind block the reader
	eventBuffer = 16
)

// Config holds configuration for the Redis notifier
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Logger, slog.Default() when nil
	Logger *slog.Logger
}

// redisNotifier implements Publisher and Subscriber with Redis pub/sub
type redisNotifier struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis creates a new Redis-backed notifier
func NewRedis(cfg *Config) (*redisNotifier, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &redisNotifier{
		client: cfg.RedisClient,
		logger: logger.With("component", "notifier"),
	}, nil
}

func eventChannel(tournamentID string) string {
	return fmt.Sprintf("%s%s", channelPrefix, tournamentID)
}

// Publish sends the event as JSON on the tournament's channel
func (n *redisNotifier) Publish(ctx context.Context, input *PublishInput) error {
	if input == nil || input.Event == nil {
		return errors.New("input and event cannot be nil")
	}

	if input.Event.TournamentID == "" {
		return errors.New("tournament ID cannot be empty")
	}

	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := n.client.Publish(ctx, eventChannel(input.Event.TournamentID), eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe follows one tournament, or all of them through a pattern
// subscription when no ID is given. The subscription is confirmed by Redis
// before it is returned.
func (n *redisNotifier) Subscribe(ctx context.Context, input *SubscribeInput) (*Subscription, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var pubsub *redis.PubSub
	if input.TournamentID == "" {
		pubsub = n.client.PSubscribe(ctx, eventChannel("*"))
	} else {
		pubsub = n.client.Subscribe(ctx, eventChannel(input.TournamentID))
	}

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	events := make(chan *Event, eventBuffer)
	go n.forward(ctx, pubsub, events)

	return &Subscription{
		Events: events,
		pubsub: pubsub,
	}, nil
}

func (n *redisNotifier) forward(ctx context.Context, pubsub *redis.PubSub, events chan<- *Event) {
	defer close(events)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			_ = pubsub.Close()
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.logger.Warn("dropping malformed event", "channel", msg.Channel, "error", err)
				continue
			}

			select {
			case events <- &event:
			case <-ctx.Done():
				_ = pubsub.Close()
				return
			}
		}
	}
}
