package roster

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	rosterKeyPrefix  = "roster:"
	counterKeyPrefix = "roster_counter:"
)

// ErrPlayerNotFound is returned when a player is not in the pool
var ErrPlayerNotFound = errors.New("player not found")

// Config holds configuration for the Redis roster repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed roster repository
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

func rosterKey(channelID string) string {
	return fmt.Sprintf("%s%s", rosterKeyPrefix, channelID)
}

func counterKey(channelID string) string {
	return fmt.Sprintf("%s%s", counterKeyPrefix, channelID)
}

// NextPlayerID increments the channel's counter. The first ID is 1.
func (r *redisRepository) NextPlayerID(ctx context.Context, input *NextPlayerIDInput) (int, error) {
	if input == nil || input.ChannelID == "" {
		return 0, errors.New("input and channel ID cannot be empty")
	}

	id, err := r.client.Incr(ctx, counterKey(input.ChannelID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment player counter: %w", err)
	}

	return int(id), nil
}

// SavePlayer stores a player in the channel's pool hash
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}

	if input.ChannelID == "" {
		return errors.New("channel ID cannot be empty")
	}

	if input.Player.ID <= 0 {
		return errors.New("player ID must be positive")
	}

	playerJSON, err := json.Marshal(input.Player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	field := strconv.Itoa(input.Player.ID)
	if err := r.client.HSet(ctx, rosterKey(input.ChannelID), field, playerJSON).Err(); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// GetPlayers retrieves all players of a pool ordered by ID
func (r *redisRepository) GetPlayers(ctx context.Context, input *GetPlayersInput) (*GetPlayersOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	entries, err := r.client.HGetAll(ctx, rosterKey(input.ChannelID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	players := make([]*models.Player, 0, len(entries))
	for field, playerJSON := range entries {
		var player models.Player
		if err := json.Unmarshal([]byte(playerJSON), &player); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", field, err)
		}
		players = append(players, &player)
	}

	slices.SortFunc(players, func(a, b *models.Player) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return &GetPlayersOutput{
		Players: players,
	}, nil
}

// RemovePlayer deletes a player from the pool
func (r *redisRepository) RemovePlayer(ctx context.Context, input *RemovePlayerInput) error {
	if input == nil || input.ChannelID == "" {
		return errors.New("input and channel ID cannot be empty")
	}

	removed, err := r.client.HDel(ctx, rosterKey(input.ChannelID), strconv.Itoa(input.PlayerID)).Result()
	if err != nil {
		return fmt.Errorf("failed to remove player: %w", err)
	}

	if removed == 0 {
		return ErrPlayerNotFound
	}

	return nil
}

// ClearRoster deletes the pool and its counter
func (r *redisRepository) ClearRoster(ctx context.Context, input *ClearRosterInput) error {
	if input == nil || input.ChannelID == "" {
		return errors.New("input and channel ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, rosterKey(input.ChannelID))
	pipe.Del(ctx, counterKey(input.ChannelID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	return nil
}
