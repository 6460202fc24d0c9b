package scriptcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/pkg/clock"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/scriptcache"
)

type InMemoryCacheTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.Fixed
	repo  scriptcache.Repository
}

func (s *InMemoryCacheTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(time.Date(2024, 5, 1, 1, 0, 0, 0, time.UTC))

	repo, err := scriptcache.NewInMemory(&scriptcache.InMemoryConfig{
		Clock:  s.clock,
		TTL:    6 * time.Hour,
		Logger: zaptest.NewLogger(s.T()),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *InMemoryCacheTestSuite) set(topic string) {
	req := testRequest()
	req.Request.Topic = topic
	_, err := s.repo.Set(s.ctx, &scriptcache.SetInput{Request: req, TemplateContent: "template", Response: "return " + topic})
	s.Require().NoError(err)
}

func (s *InMemoryCacheTestSuite) get() (*scriptcache.GetOutput, error) {
	return s.repo.Get(s.ctx, &scriptcache.GetInput{Request: testRequest(), TemplateContent: "template"})
}

func (s *InMemoryCacheTestSuite) TestHitWithinTTL() {
	s.set("Addition")
	s.clock.Advance(5 * time.Hour)

	got, err := s.get()
	s.Require().NoError(err)
	s.Assert().Equal("return Addition", got.Entry.Response)
}

func (s *InMemoryCacheTestSuite) TestMissAfterTTL() {
	s.set("Addition")
	s.clock.Advance(6 * time.Hour)

	_, err := s.get()
	s.Assert().True(errors.IsNotFound(err))
}

func (s *InMemoryCacheTestSuite) TestMissOnNextDay() {
	s.clock = clock.NewFixed(time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC))
	repo, err := scriptcache.NewInMemory(&scriptcache.InMemoryConfig{Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo

	s.set("Addition")
	s.clock.Advance(2 * time.Hour)

	_, err = s.get()
	s.Assert().True(errors.IsNotFound(err))
}

func (s *InMemoryCacheTestSuite) TestClear() {
	s.set("addition")
	s.set("subtraction")

	out, err := s.repo.Clear(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, out.Removed)

	_, err = s.get()
	s.Assert().True(errors.IsNotFound(err))
}

func (s *InMemoryCacheTestSuite) TestStatsAndClearExpired() {
	s.set("addition")
	s.clock.Advance(4 * time.Hour)
	s.set("subtraction")
	s.clock.Advance(3 * time.Hour)

	stats, err := s.repo.Stats(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(&scriptcache.StatsOutput{
		Total:    2,
		Expired:  1,
		Active:   1,
		Subjects: []string{"mathematics"},
	}, stats)

	out, err := s.repo.ClearExpired(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(1, out.Removed)

	stats, err = s.repo.Stats(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(1, stats.Total)
	s.Assert().Equal(0, stats.Expired)
}

func (s *InMemoryCacheTestSuite) TestNegativeTTL() {
	_, err := scriptcache.NewInMemory(&scriptcache.InMemoryConfig{TTL: -time.Minute})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func TestInMemoryCacheTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCacheTestSuite))
}
