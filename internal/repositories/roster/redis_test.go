package roster

import (
	"context"
	"testing"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
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
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestNextPlayerID_PerChannel() {
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		id, err := s.repo.NextPlayerID(ctx, &NextPlayerIDInput{ChannelID: "a"})
		s.Require().NoError(err)
		s.Equal(want, id)
	}

	id, err := s.repo.NextPlayerID(ctx, &NextPlayerIDInput{ChannelID: "b"})
	s.Require().NoError(err)
	s.Equal(1, id)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetPlayers_OrderedByID() {
	ctx := context.Background()

	for _, p := range []*models.Player{
		{ID: 10, Name: "Jan"},
		{ID: 2, Name: "Bea"},
		{ID: 7, Name: "Gus"},
	} {
		s.Require().NoError(s.repo.SavePlayer(ctx, &SavePlayerInput{ChannelID: "a", Player: p}))
	}

	result, err := s.repo.GetPlayers(ctx, &GetPlayersInput{ChannelID: "a"})
	s.Require().NoError(err)
	s.Require().Len(result.Players, 3)
	s.Equal(2, result.Players[0].ID)
	s.Equal(7, result.Players[1].ID)
	s.Equal(10, result.Players[2].ID)
	s.Equal("Jan", result.Players[2].Name)
}

func (s *RedisRepositoryTestSuite) TestSavePlayer_Validation() {
	ctx := context.Background()

	s.Error(s.repo.SavePlayer(ctx, nil))
	s.Error(s.repo.SavePlayer(ctx, &SavePlayerInput{Player: &models.Player{ID: 1}}))
	s.Error(s.repo.SavePlayer(ctx, &SavePlayerInput{ChannelID: "a", Player: &models.Player{}}))
}

func (s *RedisRepositoryTestSuite) TestRemovePlayer() {
	ctx := context.Background()
	s.Require().NoError(s.repo.SavePlayer(ctx, &SavePlayerInput{ChannelID: "a", Player: &models.Player{ID: 1, Name: "Ana"}}))

	s.Require().NoError(s.repo.RemovePlayer(ctx, &RemovePlayerInput{ChannelID: "a", PlayerID: 1}))
	s.Equal(ErrPlayerNotFound, s.repo.RemovePlayer(ctx, &RemovePlayerInput{ChannelID: "a", PlayerID: 1}))

	result, err := s.repo.GetPlayers(ctx, &GetPlayersInput{ChannelID: "a"})
	s.Require().NoError(err)
	s.Empty(result.Players)
}

func (s *RedisRepositoryTestSuite) TestClearRoster_ResetsCounter() {
	ctx := context.Background()
	id, err := s.repo.NextPlayerID(ctx, &NextPlayerIDInput{ChannelID: "a"})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.SavePlayer(ctx, &SavePlayerInput{ChannelID: "a", Player: &models.Player{ID: id, Name: "Ana"}}))

	s.Require().NoError(s.repo.ClearRoster(ctx, &ClearRosterInput{ChannelID: "a"}))

	result, err := s.repo.GetPlayers(ctx, &GetPlayersInput{ChannelID: "a"})
	s.Require().NoError(err)
	s.Empty(result.Players)

	id, err = s.repo.NextPlayerID(ctx, &NextPlayerIDInput{ChannelID: "a"})
	s.Require().NoError(err)
	s.Equal(1, id)
}
