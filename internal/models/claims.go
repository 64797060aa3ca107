package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims extends standard JWT claims with the authenticated user's
// identity.
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
}

// CircuitBreakerState represents the state of an outbound-call circuit breaker
type CircuitBreakerState int

func (s CircuitBreakerState) String() string {
	switch s {
	case 0:
		return "closed"
	case 1:
		return "open"
	case 2:
		return "half-open"
	default:
		return "unknown"
	}
}
