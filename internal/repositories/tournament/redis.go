package tournament

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	tournamentKeyPrefix    = "tournament:"
	channelKeyPrefix       = "channel:"
	activeTournamentsKey   = "active_tournaments"
	finishedTournamentsKey = "finished_tournaments"
)

// ErrTournamentNotFound is returned when a tournament is not found
var ErrTournamentNotFound = errors.New("tournament not found")

// Config holds configuration for the Redis tournament repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed tournament repository
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

func tournamentKey(id string) string {
	return fmt.Sprintf("%s%s", tournamentKeyPrefix, id)
}

func channelKey(channelID string) string {
	return fmt.Sprintf("%s%s", channelKeyPrefix, channelID)
}

// SaveTournament persists a tournament to Redis. Only active tournaments are
// reachable through their channel.
func (r *redisRepository) SaveTournament(ctx context.Context, input *SaveTournamentInput) error {
	if input == nil || input.Tournament == nil {
		return errors.New("input and tournament cannot be nil")
	}

	t := input.Tournament
	if t.ID == "" {
		return errors.New("tournament ID cannot be empty")
	}

	tournamentJSON, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tournament: %w", err)
	}

	// a finished tournament only releases the channel if it still owns it
	var channelOwner string
	if t.ChannelID != "" && !t.IsActive() {
		channelOwner, err = r.client.Get(ctx, channelKey(t.ChannelID)).Result()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("failed to get channel tournament: %w", err)
		}
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, tournamentKey(t.ID), tournamentJSON, 0)

	if t.IsActive() {
		if t.ChannelID != "" {
			pipe.Set(ctx, channelKey(t.ChannelID), t.ID, 0)
		}
		pipe.SAdd(ctx, activeTournamentsKey, t.ID)
		pipe.ZRem(ctx, finishedTournamentsKey, t.ID)
	} else {
		if channelOwner == t.ID {
			pipe.Del(ctx, channelKey(t.ChannelID))
		}
		pipe.SRem(ctx, activeTournamentsKey, t.ID)
		pipe.ZAdd(ctx, finishedTournamentsKey, redis.Z{
			Score:  float64(t.CreatedAt.UnixNano()),
			Member: t.ID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save tournament: %w", err)
	}

	return nil
}

// GetTournament retrieves a tournament by ID from Redis
func (r *redisRepository) GetTournament(ctx context.Context, input *GetTournamentInput) (*models.Tournament, error) {
	if input == nil || input.TournamentID == "" {
		return nil, errors.New("input and tournament ID cannot be empty")
	}

	tournamentJSON, err := r.client.Get(ctx, tournamentKey(input.TournamentID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	var t models.Tournament
	if err := json.Unmarshal([]byte(tournamentJSON), &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
	}

	return &t, nil
}

// GetTournamentByChannel retrieves the active tournament of a channel
func (r *redisRepository) GetTournamentByChannel(ctx context.Context, input *GetTournamentByChannelInput) (*models.Tournament, error) {
	if input == nil || input.ChannelID == "" {
		return nil, errors.New("input and channel ID cannot be empty")
	}

	tournamentID, err := r.client.Get(ctx, channelKey(input.ChannelID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament ID for channel: %w", err)
	}

	return r.GetTournament(ctx, &GetTournamentInput{
		TournamentID: tournamentID,
	})
}

// DeleteTournament removes a tournament and its indexes from Redis
func (r *redisRepository) DeleteTournament(ctx context.Context, input *DeleteTournamentInput) error {
	if input == nil || input.TournamentID == "" {
		return errors.New("input and tournament ID cannot be empty")
	}

	t, err := r.GetTournament(ctx, &GetTournamentInput{
		TournamentID: input.TournamentID,
	})
	if err != nil {
		return err
	}

	var channelOwner string
	if t.ChannelID != "" {
		channelOwner, err = r.client.Get(ctx, channelKey(t.ChannelID)).Result()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("failed to get channel tournament: %w", err)
		}
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, tournamentKey(t.ID))
	if channelOwner == t.ID {
		pipe.Del(ctx, channelKey(t.ChannelID))
	}
	pipe.SRem(ctx, activeTournamentsKey, t.ID)
	pipe.ZRem(ctx, finishedTournamentsKey, t.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}

	return nil
}

// ListTournaments retrieves tournaments by status. Active tournaments are
// returned oldest first, finished ones newest first.
func (r *redisRepository) ListTournaments(ctx context.Context, input *ListTournamentsInput) (*ListTournamentsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var (
		ids []string
		err error
	)
	switch input.Status {
	case models.TournamentStatusActive:
		ids, err = r.client.SMembers(ctx, activeTournamentsKey).Result()
	case models.TournamentStatusFinished:
		ids, err = r.client.ZRevRange(ctx, finishedTournamentsKey, 0, -1).Result()
	default:
		return nil, fmt.Errorf("unknown tournament status %q", input.Status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tournament IDs: %w", err)
	}

	if len(ids) == 0 {
		return &ListTournamentsOutput{
			Tournaments: []*models.Tournament{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, tournamentKey(id))
	}

	// redis.Nil for a single key is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get tournaments: %w", err)
	}

	tournaments := make([]*models.Tournament, 0, len(ids))
	for i, cmd := range cmds {
		tournamentJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				// Tournament was deleted between listing the IDs and fetching it
				continue
			}
			return nil, fmt.Errorf("failed to get tournament %s: %w", ids[i], err)
		}

		var t models.Tournament
		if err := json.Unmarshal([]byte(tournamentJSON), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tournament %s: %w", ids[i], err)
		}

		tournaments = append(tournaments, &t)
	}

	if input.Status == models.TournamentStatusActive {
		slices.SortFunc(tournaments, func(a, b *models.Tournament) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	}

	return &ListTournamentsOutput{
		Tournaments: tournaments,
	}, nil
}
