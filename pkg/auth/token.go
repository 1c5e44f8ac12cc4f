package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin       = "admin"
	RoleInterpreter = "interpreter"
)

// SessionClaims are the claims carried by DayHub session tokens.
// InterpreterID is zero for admin sessions.
type SessionClaims struct {
	Role          string `json:"role"`
	InterpreterID int64  `json:"interpreter_id,omitempty"`
	Email         string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid session token")

// MintSession signs an HS256 session token with the given claims and lifetime.
func MintSession(secret string, claims SessionClaims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("session secret not configured")
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", claims.InterpreterID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		Issuer:    "dayhub",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSession verifies a session token and returns its claims.
func ParseSession(secret, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleAdmin && claims.Role != RoleInterpreter {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
