package domain

import (
	"context"
	"time"
)

// LoginToken is a single-use magic-link token. Only the SHA-256 hash of
// the emailed token is stored.
type LoginToken struct {
	ID            int64
	TokenHash     string
	InterpreterID int64
	ExpiresAt     time.Time
	UsedAt        *time.Time
	CreatedAt     time.Time
}

// SessionUser is the principal attached to an authenticated request.
type SessionUser struct {
	Role          string `json:"role"`
	InterpreterID int64  `json:"interpreterId,omitempty"`
	Email         string `json:"email,omitempty"`
}

type LoginTokenRepository interface {
	Create(ctx context.Context, token *LoginToken) error
	GetByHash(ctx context.Context, tokenHash string) (*LoginToken, error)
	MarkUsed(ctx context.Context, id int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// LoginResult is returned after a successful magic-link verification.
type LoginResult struct {
	Token       string       `json:"token"`
	Interpreter *Interpreter `json:"interpreter"`
}

type AuthUsecase interface {
	// RequestInterpreterLogin mints and emails a magic link. It succeeds
	// silently for unknown emails to avoid account enumeration.
	RequestInterpreterLogin(ctx context.Context, email string) error
	VerifyInterpreterLogin(ctx context.Context, token string) (*LoginResult, error)
	AdminLogin(ctx context.Context, password string) (string, error)
}
