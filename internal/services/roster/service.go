package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/mexicano/internal/common/keyed"
	"github.com/KirkDiggler/mexicano/internal/models"
	rosterRepo "github.com/KirkDiggler/mexicano/internal/repositories/roster"
)

type service struct {
	rosterRepo rosterRepo.Repository
	logger     *slog.Logger

	// locks serializes pool edits per channel
	locks *keyed.Mutex
}

// New creates a new roster service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RosterRepo == nil {
		return nil, ErrNilRosterRepo
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		rosterRepo: cfg.RosterRepo,
		logger:     logger.With("service", "roster"),
		locks:      keyed.New(),
	}, nil
}

// AddPlayer stores a new player with zeroed stats
func (s *service) AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrEmptyChannel
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	unlock := s.locks.Lock(input.ChannelID)
	defer unlock()

	existing, err := s.rosterRepo.GetPlayers(ctx, &rosterRepo.GetPlayersInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	id, err := s.rosterRepo.NextPlayerID(ctx, &rosterRepo.NextPlayerIDInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to allocate player ID: %w", err)
	}

	player := &models.Player{
		ID:   id,
		Name: UniqueName(name, existing.Players),
	}

	if err := s.rosterRepo.SavePlayer(ctx, &rosterRepo.SavePlayerInput{
		ChannelID: input.ChannelID,
		Player:    player,
	}); err != nil {
		return nil, fmt.Errorf("failed to save player: %w", err)
	}

	s.logger.Debug("player added", "channel_id", input.ChannelID, "player_id", player.ID, "name", player.Name)

	return &AddPlayerOutput{
		Player:  player,
		Renamed: player.Name != name,
	}, nil
}

// RemovePlayer deletes a player from the pool
func (s *service) RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrEmptyChannel
	}

	unlock := s.locks.Lock(input.ChannelID)
	defer unlock()

	err := s.rosterRepo.RemovePlayer(ctx, &rosterRepo.RemovePlayerInput{
		ChannelID: input.ChannelID,
		PlayerID:  input.PlayerID,
	})
	if err != nil {
		if errors.Is(err, rosterRepo.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to remove player: %w", err)
	}

	return &RemovePlayerOutput{}, nil
}

// ListPlayers returns the pool ordered by player ID
func (s *service) ListPlayers(ctx context.Context, input *ListPlayersInput) (*ListPlayersOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrEmptyChannel
	}

	result, err := s.rosterRepo.GetPlayers(ctx, &rosterRepo.GetPlayersInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get roster: %w", err)
	}

	return &ListPlayersOutput{
		Players: result.Players,
	}, nil
}

// ClearRoster removes every player and resets the ID counter
func (s *service) ClearRoster(ctx context.Context, input *ClearRosterInput) (*ClearRosterOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrEmptyChannel
	}

	unlock := s.locks.Lock(input.ChannelID)
	defer unlock()

	if err := s.rosterRepo.ClearRoster(ctx, &rosterRepo.ClearRosterInput{
		ChannelID: input.ChannelID,
	}); err != nil {
		return nil, fmt.Errorf("failed to clear roster: %w", err)
	}

	s.logger.Info("roster cleared", "channel_id", input.ChannelID)

	return &ClearRosterOutput{}, nil
}

// UniqueName returns name, or name suffixed " (1)", " (2)" and so on,
// whichever is first not taken by players.
func UniqueName(name string, players []*models.Player) string {
	taken := make(map[string]bool, len(players))
	for _, p := range players {
		taken[p.Name] = true
	}

	candidate := name
	for n := 1; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s (%d)", name, n)
	}
	return candidate
}
