package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MemoryLoginLimiterSuite struct {
	suite.Suite
	now     time.Time
	limiter LoginLimiter
}

func TestMemoryLoginLimiterSuite(t *testing.T) {
	suite.Run(t, new(MemoryLoginLimiterSuite))
}

func (s *MemoryLoginLimiterSuite) SetupTest() {
	s.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	s.limiter = NewMemoryLoginLimiter(LimiterConfig{MaxAttempts: 3, Window: time.Minute}, func() time.Time { return s.now })
}

func (s *MemoryLoginLimiterSuite) TestLocksAfterMaxAttempts() {
	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		n, err := s.limiter.RecordFailure(ctx, "k")
		s.Require().NoError(err)
		s.Equal(i, n)
	}
	locked, err := s.limiter.Locked(ctx, "k")
	s.NoError(err)
	s.True(locked)

	locked, _ = s.limiter.Locked(ctx, "other")
	s.False(locked)
}

func (s *MemoryLoginLimiterSuite) TestWindowExpires() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = s.limiter.RecordFailure(ctx, "k")
	}
	s.now = s.now.Add(time.Minute)
	locked, err := s.limiter.Locked(ctx, "k")
	s.NoError(err)
	s.False(locked)
}

func (s *MemoryLoginLimiterSuite) TestResetClears() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, _ = s.limiter.RecordFailure(ctx, "k")
	}
	s.NoError(s.limiter.Reset(ctx, "k"))
	locked, _ := s.limiter.Locked(ctx, "k")
	s.False(locked)
}

func (s *MemoryLoginLimiterSuite) TestLimiterKeyHidesUsername() {
	key := LimiterKey(" Admin ", "10.0.0.1")
	s.True(strings.HasPrefix(key, "login_attempts:"))
	s.NotContains(key, "admin")
	s.Equal(key, LimiterKey("admin", "10.0.0.1"))
	s.NotEqual(key, LimiterKey("admin", "10.0.0.2"))
}
