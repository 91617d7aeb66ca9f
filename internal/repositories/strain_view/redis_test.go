package strainview_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/strain-screen/internal/entities"
	"github.com/KirkDiggler/strain-screen/internal/errors"
	mockclock "github.com/KirkDiggler/strain-screen/internal/pkg/clock/mock"
	"github.com/KirkDiggler/strain-screen/internal/redis"
	strainview "github.com/KirkDiggler/strain-screen/internal/repositories/strain_view"
	"github.com/KirkDiggler/strain-screen/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockClock *mockclock.MockClock
	client    redis.Client
	server    *miniredis.Miniredis
	repo      strainview.Repository
	ctx       context.Context
	testTime  time.Time
	testView  *entities.StrainView
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClock = mockclock.NewMockClock(s.ctrl)
	s.client, s.server = testutils.CreateTestRedisClient(s.T())

	repo, err := strainview.NewRedisRepository(&strainview.Config{
		Client: s.client,
		Clock:  s.mockClock,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.testView = testutils.CreateTestStrainView()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RedisRepositoryTestSuite) TestConfigValidation() {
	testCases := []struct {
		name string
		cfg  *strainview.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "missing client", cfg: &strainview.Config{Clock: s.mockClock}},
		{name: "missing clock", cfg: &strainview.Config{Client: s.client}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := strainview.NewRedisRepository(tc.cfg)
			s.Error(err)
			s.Nil(repo)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestPutThenGet() {
	s.mockClock.EXPECT().Now().Return(s.testTime)

	putOut, err := s.repo.Put(s.ctx, strainview.PutInput{View: s.testView, TTL: time.Minute})
	s.Require().NoError(err)
	s.Equal(s.testTime, putOut.CachedAt)
	s.Equal(s.testTime.Add(time.Minute), putOut.ExpiresAt)

	getOut, err := s.repo.Get(s.ctx, strainview.GetInput{StrainID: testutils.TestStrainID})
	s.Require().NoError(err)
	s.Equal(s.testView, getOut.View)
	s.True(s.testTime.Equal(getOut.CachedAt))
}

func (s *RedisRepositoryTestSuite) TestPutKeepsExtras() {
	s.mockClock.EXPECT().Now().Return(s.testTime)

	view := entities.MergeStrainView(
		testutils.TestStrainID,
		testutils.CreateTestEffects(),
		entities.Description{"desc": testutils.TestStrainDesc, "origin": "Afghanistan"},
		testutils.CreateTestFlavors(),
	)

	_, err := s.repo.Put(s.ctx, strainview.PutInput{View: view, TTL: time.Minute})
	s.Require().NoError(err)

	getOut, err := s.repo.Get(s.ctx, strainview.GetInput{StrainID: testutils.TestStrainID})
	s.Require().NoError(err)
	s.Equal("Afghanistan", getOut.View.Extra["origin"])
	s.Equal(view.Flavors, getOut.View.Flavors)
}

func (s *RedisRepositoryTestSuite) TestGetExpired() {
	s.mockClock.EXPECT().Now().Return(s.testTime)

	_, err := s.repo.Put(s.ctx, strainview.PutInput{View: s.testView, TTL: time.Minute})
	s.Require().NoError(err)

	s.server.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, strainview.GetInput{StrainID: testutils.TestStrainID})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, strainview.GetInput{StrainID: "404"})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetCorruptEntryIsDropped() {
	s.Require().NoError(s.server.Set(strainview.GetKey(testutils.TestStrainID), "{not json"))

	_, err := s.repo.Get(s.ctx, strainview.GetInput{StrainID: testutils.TestStrainID})
	s.Error(err)
	s.True(errors.IsDataLoss(err))
	s.False(s.server.Exists(strainview.GetKey(testutils.TestStrainID)))
}

func (s *RedisRepositoryTestSuite) TestDecode() {
	testCases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid", raw: `{"view":{"id":"1024","flavors":"Pine"},"cached_at":"2024-01-01T12:00:00Z"}`},
		{name: "malformed", raw: `{"view":`, wantErr: true},
		{name: "missing view", raw: `{"cached_at":"2024-01-01T12:00:00Z"}`, wantErr: true},
		{name: "missing id", raw: `{"view":{"flavors":"Pine"}}`, wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := strainview.Decode([]byte(tc.raw))
			if tc.wantErr {
				s.Error(err)
				s.True(errors.IsDataLoss(err))
				return
			}
			s.Require().NoError(err)
			s.Equal("1024", out.View.ID)
			s.Equal("Pine", out.View.Flavors)
			s.True(s.testTime.Equal(out.CachedAt))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestInputValidation() {
	s.Run("get empty id", func() {
		_, err := s.repo.Get(s.ctx, strainview.GetInput{})
		s.True(errors.IsInvalidArgument(err))
	})
	s.Run("put nil view", func() {
		_, err := s.repo.Put(s.ctx, strainview.PutInput{TTL: time.Minute})
		s.True(errors.IsInvalidArgument(err))
	})
	s.Run("put empty id", func() {
		_, err := s.repo.Put(s.ctx, strainview.PutInput{View: &entities.StrainView{}, TTL: time.Minute})
		s.True(errors.IsInvalidArgument(err))
	})
	s.Run("put zero ttl", func() {
		_, err := s.repo.Put(s.ctx, strainview.PutInput{View: s.testView})
		s.True(errors.IsInvalidArgument(err))
	})
	s.Run("delete empty id", func() {
		_, err := s.repo.Delete(s.ctx, strainview.DeleteInput{})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	s.mockClock.EXPECT().Now().Return(s.testTime)

	_, err := s.repo.Put(s.ctx, strainview.PutInput{View: s.testView, TTL: time.Minute})
	s.Require().NoError(err)

	out, err := s.repo.Delete(s.ctx, strainview.DeleteInput{StrainID: testutils.TestStrainID})
	s.Require().NoError(err)
	s.True(out.Deleted)

	out, err = s.repo.Delete(s.ctx, strainview.DeleteInput{StrainID: testutils.TestStrainID})
	s.Require().NoError(err)
	s.False(out.Deleted)
}
