package tournament

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newTournament(id, channelID string, createdAt time.Time) *models.Tournament {
	return &models.Tournament{
		ID:           id,
		ChannelID:    channelID,
		Status:       models.TournamentStatusActive,
		CurrentRound: 1,
		Players: []*models.Player{
			{ID: 1, Name: "Ana"},
			{ID: 2, Name: "Bruno"},
			{ID: 3, Name: "Carla", TimesSatOut: 1},
		},
		Courts:    []string{"Center"},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedis_Validation() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetTournament() {
	ctx := context.Background()
	t := s.newTournament("t-1", "channel-1", s.testNow)

	s.Require().NoError(s.repo.SaveTournament(ctx, &SaveTournamentInput{Tournament: t}))

	got, err := s.repo.GetTournament(ctx, &GetTournamentInput{TournamentID: "t-1"})
	s.Require().NoError(err)
	s.Equal(t.ID, got.ID)
	s.Equal(t.ChannelID, got.ChannelID)
	s.Equal(models.TournamentStatusActive, got.Status)
	s.Equal(1, got.CurrentRound)
	s.Equal([]string{"Center"}, got.Courts)
	s.Require().Len(got.Players, 3)
	s.Equal("Carla", got.Players[2].Name)
	s.Equal(1, got.Players[2].TimesSatOut)
	s.True(t.CreatedAt.Equal(got.CreatedAt))
}

func (s *RedisRepositoryTestSuite) TestGetTournament_NotFound() {
	_, err := s.repo.GetTournament(context.Background(), &GetTournamentInput{TournamentID: "missing"})
	s.Equal(ErrTournamentNotFound, err)

	_, err = s.repo.GetTournamentByChannel(context.Background(), &GetTournamentByChannelInput{ChannelID: "missing"})
	s.Equal(ErrTournamentNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestFinishingReleasesChannel() {
	ctx := context.Background()
	t := s.newTournament("t-1", "channel-1", s.testNow)
	s.Require().NoError(s.repo.SaveTournament(ctx, &SaveTournamentInput{Tournament: t}))

	got, err := s.repo.GetTournamentByChannel(ctx, &GetTournamentByChannelInput{ChannelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal("t-1", got.ID)

	t.Status = models.TournamentStatusFinished
	s.Require().NoError(s.repo.SaveTournament(ctx, &SaveTournamentInput{Tournament: t}))

	_, err = s.repo.GetTournamentByChannel(ctx, &GetTournamentByChannelInput{ChannelID: "channel-1"})
	s.Equal(ErrTournamentNotFound, err)

	// the tournament itself is kept
	got, err = s.repo.GetTournament(ctx, &GetTournamentInput{TournamentID: "t-1"})
	s.Require().NoError(err)
	s.Equal(models.TournamentStatusFinished, got.Status)
}

func (s *RedisRepositoryTestSuite) TestFinishingOldTournamentKeepsNewChannelOwner() {
	ctx := context.Background()
	old := s.newTournament("t-old", "channel-1", s.testNow)
	s.Require().NoError(s.repo.SaveTournament(ctx, &SaveTournamentInput{Tournament: old}))

	current := s.newTournament("t-new", "channel-1", s.testNow.Add(time.Hour))
	s.Require().NoError(s.repo.SaveTournament(ctx, &SaveTournamentInput{Tournament: current}))

	old.Status = models.TournamentStatusFinished
	s.Require().NoError(s.repo.SaveTournament(ctx, &SaveTournamentInput{Tournament: old}))

	got, err := s.repo.GetTournamentByChannel(ctx, &GetTournamentByChannelInput{ChannelID: "channel-1"})
	s.Require().NoError(err)
	s.Equal("t-new", got.ID)
}

func (s *RedisRepositoryTestSuite) TestListTournaments() {
	ctx := context.Background()
	first := s.newTournament("t-1", "channel-1", s.testNow)
	second := s.newTournament("t-2", "channel-2", s.testNow.Add(time.Minute))
	third := s.newTournament("t-3", "channel-3", s.testNow.Add(2*time.Minute))
	fourth := s.newTournament("t-4", "channel-4", s.testNow.Add(3*time.Minute))
	third.Status = models.TournamentStatusFinished
	fourth.Status = models.TournamentStatusFinished

	for _, t := range []*models.Tournament{second, first, fourth, third} {
		s.Require().NoError(s.repo.SaveTournament(ctx, &SaveTournamentInput{Tournament: t}))
	}

	active, err := s.repo.ListTournaments(ctx, &ListTournamentsInput{Status: models.TournamentStatusActive})
	s.Require().NoError(err)
	s.Require().Len(active.Tournaments, 2)
	s.Equal("t-1", active.Tournaments[0].ID)
	s.Equal("t-2", active.Tournaments[1].ID)

	finished, err := s.repo.ListTournaments(ctx, &ListTournamentsInput{Status: models.TournamentStatusFinished})
	s.Require().NoError(err)
	s.Require().Len(finished.Tournaments, 2)
	s.Equal("t-4", finished.Tournaments[0].ID)
	s.Equal("t-3", finished.Tournaments[1].ID)

	_, err = s.repo.ListTournaments(ctx, &ListTournamentsInput{Status: "paused"})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestListTournaments_Empty() {
	result, err := s.repo.ListTournaments(context.Background(), &ListTournamentsInput{Status: models.TournamentStatusActive})
	s.Require().NoError(err)
	s.NotNil(result.Tournaments)
	s.Len(result.Tournaments, 0)
}

func (s *RedisRepositoryTestSuite) TestDeleteTournament() {
	ctx := context.Background()
	t := s.newTournament("t-1", "channel-1", s.testNow)
	s.Require().NoError(s.repo.SaveTournament(ctx, &SaveTournamentInput{Tournament: t}))

	s.Require().NoError(s.repo.DeleteTournament(ctx, &DeleteTournamentInput{TournamentID: "t-1"}))

	_, err := s.repo.GetTournament(ctx, &GetTournamentInput{TournamentID: "t-1"})
	s.Equal(ErrTournamentNotFound, err)

	_, err = s.repo.GetTournamentByChannel(ctx, &GetTournamentByChannelInput{ChannelID: "channel-1"})
	s.Equal(ErrTournamentNotFound, err)

	result, err := s.repo.ListTournaments(ctx, &ListTournamentsInput{Status: models.TournamentStatusActive})
	s.Require().NoError(err)
	s.Len(result.Tournaments, 0)

	s.Equal(ErrTournamentNotFound, s.repo.DeleteTournament(ctx, &DeleteTournamentInput{TournamentID: "t-1"}))
}
