package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/redis/go-redis/v9"
)

const historyKeyPrefix = "history:"

// Config holds configuration for the Redis history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed history repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func historyKey(tournamentID string) string {
	return fmt.Sprintf("%s%s", historyKeyPrefix, tournamentID)
}

// AppendSnapshot pushes a snapshot onto the tournament's list
func (r *redisRepository) AppendSnapshot(ctx context.Context, input *AppendSnapshotInput) error {
	if input == nil || input.Snapshot == nil {
		return errors.New("input and snapshot cannot be nil")
	}

	if input.Snapshot.TournamentID == "" {
		return errors.New("tournament ID cannot be empty")
	}

	snapshotJSON, err := json.Marshal(input.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.RPush(ctx, historyKey(input.Snapshot.TournamentID), snapshotJSON).Err(); err != nil {
		return fmt.Errorf("failed to append snapshot: %w", err)
	}

	return nil
}

// GetHistory reads the whole list. A tournament without completed rounds has
// an empty history.
func (r *redisRepository) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, errors.New("input and tournament ID cannot be empty")
	}

	entries, err := r.client.LRange(ctx, historyKey(input.TournamentID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	snapshots := make([]*models.RoundSnapshot, 0, len(entries))
	for i, entry := range entries {
		var snap models.RoundSnapshot
		if err := json.Unmarshal([]byte(entry), &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot %d: %w", i, err)
		}
		snapshots = append(snapshots, &snap)
	}

	return &GetHistoryOutput{
		Snapshots: snapshots,
	}, nil
}

// DeleteHistory removes the tournament's list
func (r *redisRepository) DeleteHistory(ctx context.Context, input *DeleteHistoryInput) error {
	if input == nil || input.TournamentID == "" {
		return errors.New("input and tournament ID cannot be empty")
	}

	if err := r.client.Del(ctx, historyKey(input.TournamentID)).Err(); err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}

	return nil
}
