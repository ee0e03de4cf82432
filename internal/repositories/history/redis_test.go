package history

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

func (s *RedisRepositoryTestSuite) snapshot(round int) *models.RoundSnapshot {
	return &models.RoundSnapshot{
		TournamentID: "t-1",
		Round:        round,
		Matches: [][]*models.Player{{
			{ID: 1, Name: "Ana", RoundPoints: 20},
			{ID: 2, Name: "Bruno", RoundPoints: 12},
			{ID: 3, Name: "Carla", RoundPoints: 20},
			{ID: 4, Name: "Dani", RoundPoints: 12},
		}},
		Sitovers:    []*models.Player{{ID: 5, Name: "Eva"}},
		CompletedAt: s.testNow.Add(time.Duration(round) * time.Minute),
	}
}

func (s *RedisRepositoryTestSuite) TestAppendAndGetHistory() {
	ctx := context.Background()

	for round := 1; round <= 3; round++ {
		s.Require().NoError(s.repo.AppendSnapshot(ctx, &AppendSnapshotInput{Snapshot: s.snapshot(round)}))
	}

	result, err := s.repo.GetHistory(ctx, &GetHistoryInput{TournamentID: "t-1"})
	s.Require().NoError(err)
	s.Require().Len(result.Snapshots, 3)
	for i, snap := range result.Snapshots {
		s.Equal(i+1, snap.Round)
	}

	first := result.Snapshots[0]
	s.Require().Len(first.Matches, 1)
	s.Equal(20, first.Matches[0][0].RoundPoints)
	s.Equal(12, first.Matches[0][1].RoundPoints)
	s.Equal("Eva", first.Sitovers[0].Name)
}

func (s *RedisRepositoryTestSuite) TestGetHistory_Empty() {
	result, err := s.repo.GetHistory(context.Background(), &GetHistoryInput{TournamentID: "none"})
	s.Require().NoError(err)
	s.NotNil(result.Snapshots)
	s.Empty(result.Snapshots)
}

func (s *RedisRepositoryTestSuite) TestAppendSnapshot_Validation() {
	ctx := context.Background()

	s.Error(s.repo.AppendSnapshot(ctx, nil))
	s.Error(s.repo.AppendSnapshot(ctx, &AppendSnapshotInput{Snapshot: &models.RoundSnapshot{Round: 1}}))
}

func (s *RedisRepositoryTestSuite) TestDeleteHistory() {
	ctx := context.Background()
	s.Require().NoError(s.repo.AppendSnapshot(ctx, &AppendSnapshotInput{Snapshot: s.snapshot(1)}))

	s.Require().NoError(s.repo.DeleteHistory(ctx, &DeleteHistoryInput{TournamentID: "t-1"}))

	result, err := s.repo.GetHistory(ctx, &GetHistoryInput{TournamentID: "t-1"})
	s.Require().NoError(err)
	s.Empty(result.Snapshots)
}
