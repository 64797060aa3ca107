package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// CircuitBreakerSuite defines the test suite for CircuitBreaker
type CircuitBreakerSuite struct {
	suite.Suite
	breaker CircuitBreakerInterface
}

func (s *CircuitBreakerSuite) SetupTest() {
	s.breaker = NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:     3,
		ResetTimeout:    50 * time.Millisecond,
		HalfOpenMaxSucc: 2,
	})
}

func TestCircuitBreakerSuite(t *testing.T) {
	suite.Run(t, new(CircuitBreakerSuite))
}

func (s *CircuitBreakerSuite) TestStartsClosed() {
	s.False(s.breaker.IsOpen())
	s.Equal(StateClosed, s.breaker.GetState())
}

func (s *CircuitBreakerSuite) TestOpensAfterMaxFailures() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}
	s.True(s.breaker.IsOpen())
	s.Equal(StateOpen, s.breaker.GetState())
}

func (s *CircuitBreakerSuite) TestSuccessResetsFailureCount() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.breaker.RecordSuccess()
	s.Equal(0, s.breaker.GetFailureCount())

	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())
}

func (s *CircuitBreakerSuite) TestHalfOpenAfterResetTimeout() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}
	s.True(s.breaker.IsOpen())

	time.Sleep(60 * time.Millisecond)
	s.False(s.breaker.IsOpen())
	s.Equal(StateHalfOpen, s.breaker.GetState())
}

func (s *CircuitBreakerSuite) TestHalfOpenClosesAfterSuccesses() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}
	time.Sleep(60 * time.Millisecond)
	s.False(s.breaker.IsOpen())

	s.breaker.RecordSuccess()
	s.breaker.RecordSuccess()
	s.Equal(StateClosed, s.breaker.GetState())
}

func (s *CircuitBreakerSuite) TestHalfOpenReopensOnFailure() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}
	time.Sleep(60 * time.Millisecond)
	s.False(s.breaker.IsOpen())

	s.breaker.RecordFailure()
	s.True(s.breaker.IsOpen())
}

func (s *CircuitBreakerSuite) TestReset() {
	for i := 0; i < 3; i++ {
		s.breaker.RecordFailure()
	}
	s.breaker.Reset()
	s.False(s.breaker.IsOpen())
	s.Equal(0, s.breaker.GetFailureCount())
}
