package postgres

import (
	"context"
	"fmt"

	"dayhub-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type favoriteRepo struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) domain.FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Put(ctx context.Context, fav *domain.Favorite) error {
	query := `INSERT INTO favorites (owner_email, interpreter_id, created_at)
		VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, fav.OwnerEmail, fav.InterpreterID, fav.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *favoriteRepo) Delete(ctx context.Context, ownerEmail string, interpreterID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE LOWER(owner_email) = LOWER($1) AND interpreter_id = $2`,
		ownerEmail, interpreterID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *favoriteRepo) FetchInterpreters(ctx context.Context, ownerEmail string) ([]domain.Interpreter, error) {
	query := fmt.Sprintf(`SELECT %s FROM interpreters
		WHERE id IN (SELECT interpreter_id FROM favorites WHERE LOWER(owner_email) = LOWER($1))
		ORDER BY id ASC`, selectColumns)

	rows, err := r.db.Query(ctx, query, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interpreters []domain.Interpreter
	for rows.Next() {
		interp, err := scanInterpreter(rows)
		if err != nil {
			return nil, err
		}
		interpreters = append(interpreters, *interp)
	}
	return interpreters, rows.Err()
}
