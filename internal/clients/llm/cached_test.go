package llm_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/KirkDiggler/lesson-forge/internal/clients/llm"
	llmmock "github.com/KirkDiggler/lesson-forge/internal/clients/llm/mock"
	"github.com/KirkDiggler/lesson-forge/internal/errors"
	"github.com/KirkDiggler/lesson-forge/internal/metrics"
	"github.com/KirkDiggler/lesson-forge/internal/repositories/scriptcache"
	scriptcachemock "github.com/KirkDiggler/lesson-forge/internal/repositories/scriptcache/mock"
)

type CachedTestSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	mockNext  *llmmock.MockClient
	mockCache *scriptcachemock.MockRepository
	reg       *prometheus.Registry
	client    llm.Client
	input     *llm.GenerateInput
}

func (s *CachedTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockNext = llmmock.NewMockClient(s.ctrl)
	s.mockCache = scriptcachemock.NewMockRepository(s.ctrl)
	s.reg = prometheus.NewRegistry()

	rec, err := metrics.NewRecorder(s.reg)
	s.Require().NoError(err)

	client, err := llm.NewCached(&llm.CachedConfig{
		Client:  s.mockNext,
		Cache:   s.mockCache,
		Metrics: rec,
		Logger:  zaptest.NewLogger(s.T()),
	})
	s.Require().NoError(err)
	s.client = client
	s.input = &llm.GenerateInput{Request: testRequest(), TemplateContent: "return {}\n"}
}

func (s *CachedTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CachedTestSuite) lookups(result string) float64 {
	families, err := s.reg.Gather()
	s.Require().NoError(err)
	for _, f := range families {
		if f.GetName() != "forge_cache_lookups_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			if m.GetLabel()[0].GetValue() == result {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func (s *CachedTestSuite) TestHitSkipsGeneration() {
	s.mockCache.EXPECT().
		Get(s.ctx, &scriptcache.GetInput{Request: s.input.Request, TemplateContent: s.input.TemplateContent}).
		Return(&scriptcache.GetOutput{Entry: &scriptcache.CacheEntry{Fingerprint: "abc", Response: "return 1\n"}}, nil)

	out, err := s.client.GenerateScript(s.ctx, s.input)
	s.Require().NoError(err)
	s.Assert().Equal("return 1\n", out.Script)
	s.Assert().True(out.Cached)
	s.Assert().Equal(1.0, s.lookups(metrics.CacheHit))
}

func (s *CachedTestSuite) TestMissGeneratesAndStores() {
	gomock.InOrder(
		s.mockCache.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.NotFound("miss")),
		s.mockNext.EXPECT().GenerateScript(s.ctx, s.input).Return(&llm.GenerateOutput{Script: "return 2\n"}, nil),
		s.mockCache.EXPECT().
			Set(s.ctx, &scriptcache.SetInput{Request: s.input.Request, TemplateContent: s.input.TemplateContent, Response: "return 2\n"}).
			Return(&scriptcache.SetOutput{}, nil),
	)

	out, err := s.client.GenerateScript(s.ctx, s.input)
	s.Require().NoError(err)
	s.Assert().Equal("return 2\n", out.Script)
	s.Assert().False(out.Cached)
	s.Assert().Equal(1.0, s.lookups(metrics.CacheMiss))
}

func (s *CachedTestSuite) TestCacheErrorsAreNotFatal() {
	s.mockCache.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))
	s.mockNext.EXPECT().GenerateScript(s.ctx, s.input).Return(&llm.GenerateOutput{Script: "return 3\n"}, nil)
	s.mockCache.EXPECT().Set(s.ctx, gomock.Any()).Return(nil, errors.Unavailable("redis down"))

	out, err := s.client.GenerateScript(s.ctx, s.input)
	s.Require().NoError(err)
	s.Assert().Equal("return 3\n", out.Script)
	s.Assert().Equal(1.0, s.lookups(metrics.CacheError))
}

func (s *CachedTestSuite) TestGenerationErrorIsNotCached() {
	s.mockCache.EXPECT().Get(s.ctx, gomock.Any()).Return(nil, errors.NotFound("miss"))
	s.mockNext.EXPECT().GenerateScript(s.ctx, s.input).Return(nil, errors.Unavailable("model offline"))

	_, err := s.client.GenerateScript(s.ctx, s.input)
	s.Require().Error(err)
	s.Assert().True(errors.IsUnavailable(err))
}

func (s *CachedTestSuite) TestWithInMemoryCache() {
	cache, err := scriptcache.NewInMemory(nil)
	s.Require().NoError(err)

	client, err := llm.NewCached(&llm.CachedConfig{Client: s.mockNext, Cache: cache})
	s.Require().NoError(err)

	s.mockNext.EXPECT().GenerateScript(s.ctx, s.input).Return(&llm.GenerateOutput{Script: "return 4\n"}, nil).Times(1)

	first, err := client.GenerateScript(s.ctx, s.input)
	s.Require().NoError(err)
	second, err := client.GenerateScript(s.ctx, s.input)
	s.Require().NoError(err)

	s.Assert().False(first.Cached)
	s.Assert().True(second.Cached)
	s.Assert().Equal(first.Script, second.Script)
}

func (s *CachedTestSuite) TestNewCachedValidation() {
	_, err := llm.NewCached(&llm.CachedConfig{Cache: s.mockCache})
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "client")

	_, err = llm.NewCached(nil)
	s.Require().Error(err)
}

func TestCachedTestSuite(t *testing.T) {
	suite.Run(t, new(CachedTestSuite))
}
