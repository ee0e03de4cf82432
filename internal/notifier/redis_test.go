package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/mexicano/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisNotifierTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   *redis.Client
	notifier *redisNotifier
	ctx      context.Context
	cancel   context.CancelFunc
}

func (s *RedisNotifierTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	n, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.notifier = n

	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Second)
}

func (s *RedisNotifierTestSuite) TearDownTest() {
	s.cancel()
	s.client.Close()
	s.mr.Close()
}

func TestRedisNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(RedisNotifierTestSuite))
}

func (s *RedisNotifierTestSuite) event(eventType EventType, id string) *Event {
	return &Event{
		Type:         eventType,
		TournamentID: id,
		Payload: &models.Tournament{
			ID:           id,
			Status:       models.TournamentStatusActive,
			CurrentRound: 2,
		},
	}
}

func (s *RedisNotifierTestSuite) receive(sub *Subscription) *Event {
	select {
	case ev, ok := <-sub.Events:
		s.Require().True(ok, "subscription closed")
		return ev
	case <-time.After(2 * time.Second):
		s.Require().FailNow("timed out waiting for event")
	}
	return nil
}

func (s *RedisNotifierTestSuite) TestPublishAndSubscribe() {
	sub, err := s.notifier.Subscribe(s.ctx, &SubscribeInput{TournamentID: "t-1"})
	s.Require().NoError(err)
	defer sub.Close()

	s.Require().NoError(s.notifier.Publish(s.ctx, &PublishInput{Event: s.event(EventUpdateTournament, "t-2")}))
	s.Require().NoError(s.notifier.Publish(s.ctx, &PublishInput{Event: s.event(EventUpdateTournament, "t-1")}))

	ev := s.receive(sub)
	s.Equal(EventUpdateTournament, ev.Type)
	s.Equal("t-1", ev.TournamentID)
	s.Require().NotNil(ev.Payload)
	s.Equal(2, ev.Payload.CurrentRound)
}

func (s *RedisNotifierTestSuite) TestSubscribeAll() {
	sub, err := s.notifier.Subscribe(s.ctx, &SubscribeInput{})
	s.Require().NoError(err)
	defer sub.Close()

	s.Require().NoError(s.notifier.Publish(s.ctx, &PublishInput{Event: s.event(EventNewTournament, "t-1")}))
	s.Require().NoError(s.notifier.Publish(s.ctx, &PublishInput{Event: s.event(EventFinishTournament, "t-2")}))

	first := s.receive(sub)
	second := s.receive(sub)
	s.Equal("t-1", first.TournamentID)
	s.Equal(EventNewTournament, first.Type)
	s.Equal("t-2", second.TournamentID)
	s.Equal(EventFinishTournament, second.Type)
}

func (s *RedisNotifierTestSuite) TestMalformedMessagesAreDropped() {
	sub, err := s.notifier.Subscribe(s.ctx, &SubscribeInput{TournamentID: "t-1"})
	s.Require().NoError(err)
	defer sub.Close()

	s.Require().NoError(s.client.Publish(s.ctx, eventChannel("t-1"), "not json").Err())
	s.Require().NoError(s.notifier.Publish(s.ctx, &PublishInput{Event: s.event(EventUpdateTournament, "t-1")}))

	ev := s.receive(sub)
	s.Equal("t-1", ev.TournamentID)
}

func (s *RedisNotifierTestSuite) TestCancelClosesEvents() {
	ctx, cancel := context.WithCancel(s.ctx)
	sub, err := s.notifier.Subscribe(ctx, &SubscribeInput{TournamentID: "t-1"})
	s.Require().NoError(err)

	cancel()

	select {
	case _, ok := <-sub.Events:
		s.False(ok)
	case <-time.After(2 * time.Second):
		s.Fail("events channel not closed")
	}
}

func (s *RedisNotifierTestSuite) TestPublish_Validation() {
	s.Error(s.notifier.Publish(s.ctx, nil))
	s.Error(s.notifier.Publish(s.ctx, &PublishInput{Event: &Event{Type: EventUpdateTournament}}))
}
