package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"dayhub-backend/config"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
	"dayhub-backend/pkg/auth"
	"dayhub-backend/pkg/email"
	"dayhub-backend/pkg/logger"

	"github.com/google/uuid"
)

type authUsecase struct {
	interpreterRepo domain.InterpreterRepository
	tokenRepo       domain.LoginTokenRepository
	emailService    *email.EmailService
	cfg             *config.Config
}

func NewAuthUsecase(
	interpreterRepo domain.InterpreterRepository,
	tokenRepo domain.LoginTokenRepository,
	emailService *email.EmailService,
	cfg *config.Config,
) domain.AuthUsecase {
	return &authUsecase{
		interpreterRepo: interpreterRepo,
		tokenRepo:       tokenRepo,
		emailService:    emailService,
		cfg:             cfg,
	}
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RequestInterpreterLogin mints a single-use login token and emails the
// magic link. Unknown emails succeed silently so the endpoint cannot be
// used to enumerate accounts.
func (u *authUsecase) RequestInterpreterLogin(ctx context.Context, emailAddr string) error {
	interp, err := u.interpreterRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if logger.Log != nil {
				logger.Log.Info("login link requested for unknown email")
			}
			return nil
		}
		return err
	}

	token := uuid.NewString()
	ttl := time.Duration(u.cfg.LoginTokenTTLMinutes) * time.Minute
	loginToken := &domain.LoginToken{
		TokenHash:     hashToken(token),
		InterpreterID: interp.ID,
		ExpiresAt:     time.Now().Add(ttl),
		CreatedAt:     time.Now(),
	}
	if err := u.tokenRepo.Create(ctx, loginToken); err != nil {
		return err
	}

	loginURL := fmt.Sprintf("%s/interpreter/login?token=%s", u.cfg.FrontendURL, token)
	return u.emailService.SendMagicLink(interp.Email, email.MagicLinkData{
		FirstName: interp.FirstName,
		LoginURL:  loginURL,
		ExpiresIn: fmt.Sprintf("%d minutes", u.cfg.LoginTokenTTLMinutes),
	})
}

func (u *authUsecase) VerifyInterpreterLogin(ctx context.Context, token string) (*domain.LoginResult, error) {
	invalid := apperror.Unauthorized("Login link is invalid or has expired")

	stored, err := u.tokenRepo.GetByHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if stored.UsedAt != nil || time.Now().After(stored.ExpiresAt) {
		return nil, invalid
	}

	// MarkUsed only claims unused tokens, so a concurrent second
	// redemption of the same link loses here
	if err := u.tokenRepo.MarkUsed(ctx, stored.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	interp, err := u.interpreterRepo.GetByID(ctx, stored.InterpreterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	sessionToken, err := auth.MintSession(u.cfg.SessionSecret, auth.SessionClaims{
		Role:          auth.RoleInterpreter,
		InterpreterID: interp.ID,
		Email:         interp.Email,
	}, time.Duration(u.cfg.SessionTokenTTLHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{Token: sessionToken, Interpreter: interp}, nil
}

func (u *authUsecase) AdminLogin(ctx context.Context, password string) (string, error) {
	if u.cfg.AdminPassword == "" {
		return "", apperror.Unauthorized("Admin login is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(u.cfg.AdminPassword)) != 1 {
		return "", apperror.Unauthorized("Invalid password")
	}

	return auth.MintSession(u.cfg.SessionSecret, auth.SessionClaims{
		Role: auth.RoleAdmin,
	}, time.Duration(u.cfg.SessionTokenTTLHours)*time.Hour)
}
