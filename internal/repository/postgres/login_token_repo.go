package postgres

import (
	"context"
	"errors"
	"time"

	"dayhub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type loginTokenRepo struct {
	db *pgxpool.Pool
}

func NewLoginTokenRepository(db *pgxpool.Pool) domain.LoginTokenRepository {
	return &loginTokenRepo{db: db}
}

func (r *loginTokenRepo) Create(ctx context.Context, token *domain.LoginToken) error {
	query := `INSERT INTO login_tokens (token_hash, interpreter_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRow(ctx, query,
		token.TokenHash, token.InterpreterID, token.ExpiresAt, token.CreatedAt,
	).Scan(&token.ID)
}

func (r *loginTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*domain.LoginToken, error) {
	query := `SELECT id, token_hash, interpreter_id, expires_at, used_at, created_at
		FROM login_tokens WHERE token_hash = $1`
	var token domain.LoginToken
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID, &token.TokenHash, &token.InterpreterID,
		&token.ExpiresAt, &token.UsedAt, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// MarkUsed claims a token. The used_at guard makes redemption single-use
// even under concurrent verification attempts.
func (r *loginTokenRepo) MarkUsed(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx,
		`UPDATE login_tokens SET used_at = $2 WHERE id = $1 AND used_at IS NULL`,
		id, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *loginTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM login_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
