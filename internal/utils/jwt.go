package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims are the claims the console reads from an access token.
type AccessClaims struct {
	jwt.RegisteredClaims
	Role   string `json:"role,omitempty"`
	UserID any    `json:"userId,omitempty"`
}

// ParseAccessClaims decodes the claims of tokenString WITHOUT verifying its
// signature. The console never holds the signing key; the values only fill
// gaps in backend responses and are never used for authorization decisions
// on the server side.
func ParseAccessClaims(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, errors.New("empty token")
	}

	var claims AccessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return AccessClaims{}, fmt.Errorf("error occurred parsing token claims: %w", err)
	}

	return claims, nil
}

// Expired reports whether the claims carry an expiry that lies before now.
// Tokens without an exp claim never expire.
func (c AccessClaims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.After(c.ExpiresAt.Time)
}

// UserIDString returns the userId claim as a string, accepting numbers and
// strings.
func (c AccessClaims) UserIDString() string {
	switch v := c.UserID.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}
