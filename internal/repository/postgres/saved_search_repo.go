package postgres

import (
	"context"

	"dayhub-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type savedSearchRepo struct {
	db *pgxpool.Pool
}

func NewSavedSearchRepository(db *pgxpool.Pool) domain.SavedSearchRepository {
	return &savedSearchRepo{db: db}
}

func (r *savedSearchRepo) Create(ctx context.Context, search *domain.SavedSearch) error {
	query := `INSERT INTO saved_searches (owner_email, name, filters, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRow(ctx, query,
		search.OwnerEmail, search.Name, search.Filters, search.CreatedAt,
	).Scan(&search.ID)
}

func (r *savedSearchRepo) FetchByOwner(ctx context.Context, ownerEmail string) ([]domain.SavedSearch, error) {
	query := `SELECT id, owner_email, name, filters, created_at
		FROM saved_searches WHERE LOWER(owner_email) = LOWER($1) ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []domain.SavedSearch
	for rows.Next() {
		var s domain.SavedSearch
		if err := rows.Scan(&s.ID, &s.OwnerEmail, &s.Name, &s.Filters, &s.CreatedAt); err != nil {
			return nil, err
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}

func (r *savedSearchRepo) Delete(ctx context.Context, id int64, ownerEmail string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM saved_searches WHERE id = $1 AND LOWER(owner_email) = LOWER($2)`,
		id, ownerEmail)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
