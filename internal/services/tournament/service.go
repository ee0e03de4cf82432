package tournament

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/KirkDiggler/mexicano/internal/common/clock"
	"github.com/KirkDiggler/mexicano/internal/common/keyed"
	"github.com/KirkDiggler/mexicano/internal/common/uuid"
	"github.com/KirkDiggler/mexicano/internal/metrics"
	"github.com/KirkDiggler/mexicano/internal/mexicano"
	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/KirkDiggler/mexicano/internal/notifier"
	historyRepo "github.com/KirkDiggler/mexicano/internal/repositories/history"
	rosterRepo "github.com/KirkDiggler/mexicano/internal/repositories/roster"
	tournamentRepo "github.com/KirkDiggler/mexicano/internal/repositories/tournament"
)

var defaultCourts = []string{"Court 1", "Court 2", "Court 3", "Court 4"}

// service implements the Service interface
type service struct {
	courts     []string
	minPlayers int

	tournamentRepo tournamentRepo.Repository
	rosterRepo     rosterRepo.Repository
	historyRepo    historyRepo.Repository

	publisher     notifier.Publisher
	metrics       metrics.Recorder
	advancer      *mexicano.Advancer
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *slog.Logger

	locks *keyed.Mutex
}

// New creates a new tournament service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.TournamentRepo == nil {
		return nil, ErrNilTournamentRepo
	}

	if cfg.RosterRepo == nil {
		return nil, ErrNilRosterRepo
	}

	if cfg.HistoryRepo == nil {
		return nil, ErrNilHistoryRepo
	}

	if cfg.Publisher == nil {
		return nil, ErrNilPublisher
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	advancer, err := mexicano.New(&mexicano.Config{
		Random:              cfg.Random,
		AvoidRepeatPartners: cfg.AvoidRepeatPartners,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create round advancer: %w", err)
	}

	courts := cfg.Courts
	if len(courts) == 0 {
		courts = defaultCourts
	}

	minPlayers := cfg.MinPlayers
	if minPlayers < 1 {
		minPlayers = mexicano.PlayersPerMatch
	}

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &service{
		courts:         slices.Clone(courts),
		minPlayers:     minPlayers,
		tournamentRepo: cfg.TournamentRepo,
		rosterRepo:     cfg.RosterRepo,
		historyRepo:    cfg.HistoryRepo,
		publisher:      cfg.Publisher,
		metrics:        recorder,
		advancer:       advancer,
		clock:          cfg.Clock,
		uuidGenerator:  cfg.UUIDGenerator,
		logger:         logger.With("service", "tournament"),
		locks:          keyed.New(),
	}, nil
}

// CreateTournament arranges round one from the roster and stores the tournament
func (s *service) CreateTournament(ctx context.Context, input *CreateTournamentInput) (*CreateTournamentOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrEmptyChannel
	}

	unlock := s.locks.Lock("channel:" + input.ChannelID)
	defer unlock()

	existing, err := s.tournamentRepo.GetTournamentByChannel(ctx, &tournamentRepo.GetTournamentByChannelInput{
		ChannelID: input.ChannelID,
	})
	if err == nil && existing != nil && existing.IsActive() {
		return nil, ErrTournamentAlreadyExists
	}
	if err != nil && !errors.Is(err, tournamentRepo.ErrTournamentNotFound) {
		return nil, fmt.Errorf("failed to check channel tournament: %w", err)
	}

	players := input.Players
	if len(players) == 0 {
		result, err := s.rosterRepo.GetPlayers(ctx, &rosterRepo.GetPlayersInput{
			ChannelID: input.ChannelID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get roster: %w", err)
		}
		players = result.Players
	}

	if err := validatePlayers(players); err != nil {
		return nil, err
	}

	if len(players) < s.minPlayers {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughPlayers, len(players), s.minPlayers)
	}

	courts := input.Courts
	if len(courts) == 0 {
		courts = s.courts
	}

	// stats always start from zero whatever the roster holds
	fresh := make([]*models.Player, len(players))
	for i, p := range players {
		fresh[i] = &models.Player{ID: p.ID, Name: p.Name}
	}

	state := s.advancer.Start(fresh)
	now := s.clock.Now()

	t := &models.Tournament{
		ID:           s.uuidGenerator.NewUUID(),
		ChannelID:    input.ChannelID,
		Status:       models.TournamentStatusActive,
		CurrentRound: state.Round,
		Players:      state.Players,
		Courts:       slices.Clone(courts),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.tournamentRepo.SaveTournament(ctx, &tournamentRepo.SaveTournamentInput{
		Tournament: t,
	}); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}

	s.metrics.TournamentCreated()
	s.publish(ctx, notifier.EventNewTournament, t)
	s.logger.Info("tournament created",
		"tournament_id", t.ID,
		"channel_id", t.ChannelID,
		"players", len(t.Players),
		"sitovers", len(state.Sitovers()),
	)

	return &CreateTournamentOutput{
		Tournament: t,
		Round:      s.buildRound(t),
	}, nil
}

// GetTournament retrieves a tournament by ID
func (s *service) GetTournament(ctx context.Context, input *GetTournamentInput) (*GetTournamentOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	t, err := s.load(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	return &GetTournamentOutput{Tournament: t}, nil
}

// GetTournamentByChannel retrieves the active tournament of a channel
func (s *service) GetTournamentByChannel(ctx context.Context, input *GetTournamentByChannelInput) (*GetTournamentOutput, error) {
	if input == nil || input.ChannelID == "" {
		return nil, ErrEmptyChannel
	}

	t, err := s.tournamentRepo.GetTournamentByChannel(ctx, &tournamentRepo.GetTournamentByChannelInput{
		ChannelID: input.ChannelID,
	})
	if err != nil {
		if errors.Is(err, tournamentRepo.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	return &GetTournamentOutput{Tournament: t}, nil
}

// ListTournaments retrieves tournaments by status
func (s *service) ListTournaments(ctx context.Context, input *ListTournamentsInput) (*ListTournamentsOutput, error) {
	status := models.TournamentStatusActive
	if input != nil && input.Status != "" {
		status = input.Status
	}

	result, err := s.tournamentRepo.ListTournaments(ctx, &tournamentRepo.ListTournamentsInput{
		Status: status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}

	return &ListTournamentsOutput{Tournaments: result.Tournaments}, nil
}

// SubmitScore gives points to one side of a match and the rest to the other
func (s *service) SubmitScore(ctx context.Context, input *SubmitScoreInput) (*SubmitScoreOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.loadActive(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	state := mexicano.NewState(t.CurrentRound, t.Players)
	if err := state.ApplyScore(input.MatchNumber, input.Side, input.Points); err != nil {
		return nil, fmt.Errorf("failed to apply score: %w", err)
	}

	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	s.metrics.ScoreSubmitted()
	s.publish(ctx, notifier.EventUpdateTournament, t)

	round := s.buildRound(t)
	return &SubmitScoreOutput{
		Tournament:     t,
		Match:          round.Matches[input.MatchNumber-1],
		ReadyToAdvance: round.ReadyToAdvance,
	}, nil
}

// ResetScore clears a match's score
func (s *service) ResetScore(ctx context.Context, input *ResetScoreInput) (*ResetScoreOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.loadActive(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	state := mexicano.NewState(t.CurrentRound, t.Players)
	if err := state.ResetScore(input.MatchNumber); err != nil {
		return nil, fmt.Errorf("failed to reset score: %w", err)
	}

	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	s.publish(ctx, notifier.EventUpdateTournament, t)

	return &ResetScoreOutput{
		Tournament: t,
		Match:      s.buildRound(t).Matches[input.MatchNumber-1],
	}, nil
}

// AdvanceRound finalizes the round when every match has a score. Otherwise
// it reports the pending matches and changes nothing.
func (s *service) AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.loadActive(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	state := mexicano.NewState(t.CurrentRound, t.Players)
	next, completed, err := s.advancer.Advance(state)
	if errors.Is(err, mexicano.ErrPrematureAdvance) {
		s.metrics.PrematureAdvance()
		round := s.buildRound(t)
		return &AdvanceRoundOutput{
			Advanced:   false,
			Tournament: t,
			Round:      round,
			Pending:    pendingMatches(round),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to advance round: %w", err)
	}

	t.CurrentRound = next.Round
	t.Players = next.Players

	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	completed.TournamentID = t.ID
	completed.CompletedAt = t.UpdatedAt
	if err := s.historyRepo.AppendSnapshot(ctx, &historyRepo.AppendSnapshotInput{
		Snapshot: completed,
	}); err != nil {
		// the round has moved on, history is only for display
		s.logger.Error("failed to record round history",
			"tournament_id", t.ID,
			"round", completed.Round,
			"error", err,
		)
	}

	s.metrics.RoundAdvanced(len(next.Sitovers()))
	s.publish(ctx, notifier.EventUpdateTournament, t)
	s.logger.Info("round advanced",
		"tournament_id", t.ID,
		"round", t.CurrentRound,
		"sitovers", len(next.Sitovers()),
	)

	return &AdvanceRoundOutput{
		Advanced:   true,
		Tournament: t,
		Round:      s.buildRound(t),
		Completed:  completed,
	}, nil
}

// FinishTournament marks the tournament finished and frees its channel
func (s *service) FinishTournament(ctx context.Context, input *FinishTournamentInput) (*FinishTournamentOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.loadActive(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	t.Status = models.TournamentStatusFinished
	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	s.metrics.TournamentFinished()
	s.publish(ctx, notifier.EventFinishTournament, t)
	s.logger.Info("tournament finished", "tournament_id", t.ID, "rounds", t.CurrentRound)

	return &FinishTournamentOutput{
		Tournament:  t,
		Leaderboard: Standings(t.Players),
	}, nil
}

// GetLeaderboard ranks the players of a tournament
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	t, err := s.load(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	return &GetLeaderboardOutput{
		Tournament: t,
		Entries:    Standings(t.Players),
	}, nil
}

// GetHistory returns the snapshots of every completed round
func (s *service) GetHistory(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	if _, err := s.load(ctx, input.TournamentID); err != nil {
		return nil, err
	}

	result, err := s.historyRepo.GetHistory(ctx, &historyRepo.GetHistoryInput{
		TournamentID: input.TournamentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return &GetHistoryOutput{Snapshots: result.Snapshots}, nil
}

// GetRound returns the current round with court labels
func (s *service) GetRound(ctx context.Context, input *GetRoundInput) (*GetRoundOutput, error) {
	if input == nil || input.TournamentID == "" {
		return nil, ErrEmptyTournamentID
	}

	t, err := s.load(ctx, input.TournamentID)
	if err != nil {
		return nil, err
	}

	return &GetRoundOutput{
		Tournament: t,
		Round:      s.buildRound(t),
	}, nil
}

// SetMessageID stores the ID of the message that displays the tournament
func (s *service) SetMessageID(ctx context.Context, input *SetMessageIDInput) error {
	if input == nil || input.TournamentID == "" {
		return ErrEmptyTournamentID
	}

	unlock := s.locks.Lock(input.TournamentID)
	defer unlock()

	t, err := s.load(ctx, input.TournamentID)
	if err != nil {
		return err
	}

	t.MessageID = input.MessageID
	return s.save(ctx, t)
}

func (s *service) load(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetTournament(ctx, &tournamentRepo.GetTournamentInput{
		TournamentID: id,
	})
	if err != nil {
		if errors.Is(err, tournamentRepo.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}
	return t, nil
}

func (s *service) loadActive(ctx context.Context, id string) (*models.Tournament, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsActive() {
		return nil, ErrTournamentFinished
	}
	return t, nil
}

func (s *service) save(ctx context.Context, t *models.Tournament) error {
	t.UpdatedAt = s.clock.Now()
	if err := s.tournamentRepo.SaveTournament(ctx, &tournamentRepo.SaveTournamentInput{
		Tournament: t,
	}); err != nil {
		return fmt.Errorf("failed to save tournament: %w", err)
	}
	return nil
}

// publish is fire and forget, a failed broadcast never fails the operation
func (s *service) publish(ctx context.Context, eventType notifier.EventType, t *models.Tournament) {
	err := s.publisher.Publish(ctx, &notifier.PublishInput{
		Event: &notifier.Event{
			Type:         eventType,
			TournamentID: t.ID,
			Payload:      t,
		},
	})
	if err != nil {
		s.logger.Warn("failed to publish tournament event",
			"tournament_id", t.ID,
			"event", eventType,
			"error", err,
		)
	}
}

func (s *service) buildRound(t *models.Tournament) *Round {
	courts := t.Courts
	if len(courts) == 0 {
		courts = s.courts
	}

	state := mexicano.NewState(t.CurrentRound, t.Players)
	round := &Round{
		Number:         t.CurrentRound,
		Matches:        make([]*Match, 0),
		Sitovers:       state.Sitovers(),
		ReadyToAdvance: state.ReadyToAdvance(),
	}

	for i, m := range state.Matches() {
		scoreA, scoreB := m.Score()
		round.Matches = append(round.Matches, &Match{
			Number: m.Number,
			Court:  courts[i%len(courts)],
			TeamA:  m.TeamA,
			TeamB:  m.TeamB,
			ScoreA: scoreA,
			ScoreB: scoreB,
			Scored: m.HasScore(),
		})
	}

	return round
}

func pendingMatches(round *Round) []int {
	pending := make([]int, 0)
	for _, m := range round.Matches {
		if !m.Scored {
			pending = append(pending, m.Number)
		}
	}
	return pending
}

// Standings ranks players and numbers them. Players tied on every ranking
// criterion share a position.
func Standings(players []*models.Player) []*LeaderboardEntry {
	ranked := mexicano.Rank(players)
	entries := make([]*LeaderboardEntry, len(ranked))
	for i, p := range ranked {
		position := i + 1
		if i > 0 && mexicano.CompareStanding(ranked[i-1], p) == 0 {
			position = entries[i-1].Position
		}
		entries[i] = &LeaderboardEntry{
			Position: position,
			Player:   p,
		}
	}
	return entries
}

func validatePlayers(players []*models.Player) error {
	seen := make(map[int]bool, len(players))
	for _, p := range players {
		if p == nil || p.ID <= 0 || seen[p.ID] {
			return ErrInvalidPlayers
		}
		seen[p.ID] = true
	}
	return nil
}
