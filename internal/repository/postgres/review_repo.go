package postgres

import (
	"context"
	"errors"

	"dayhub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reviewRepo struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) domain.ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, review *domain.Review) error {
	query := `INSERT INTO reviews (interpreter_id, reviewer_name, rating, comment, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRow(ctx, query,
		review.InterpreterID, review.ReviewerName, review.Rating,
		review.Comment, review.Status, review.CreatedAt,
	).Scan(&review.ID)
}

func (r *reviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `SELECT id, interpreter_id, reviewer_name, rating, COALESCE(comment, ''), status, created_at
		FROM reviews WHERE id = $1`
	var review domain.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID, &review.InterpreterID, &review.ReviewerName,
		&review.Rating, &review.Comment, &review.Status, &review.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) FetchByInterpreter(ctx context.Context, interpreterID int64, status string) ([]domain.Review, error) {
	query := `SELECT id, interpreter_id, reviewer_name, rating, COALESCE(comment, ''), status, created_at
		FROM reviews WHERE interpreter_id = $1 AND status = $2 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, interpreterID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

func (r *reviewRepo) FetchByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Review, int64, error) {
	query := `SELECT id, interpreter_id, reviewer_name, rating, COALESCE(comment, ''), status, created_at
		FROM reviews WHERE status = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews, err := collectReviews(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepo) SetStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE reviews SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *reviewRepo) ApprovedRatings(ctx context.Context, interpreterID int64) ([]int, error) {
	query := `SELECT rating FROM reviews WHERE interpreter_id = $1 AND status = 'approved'`
	rows, err := r.db.Query(ctx, query, interpreterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func collectReviews(rows pgx.Rows) ([]domain.Review, error) {
	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID, &review.InterpreterID, &review.ReviewerName,
			&review.Rating, &review.Comment, &review.Status, &review.CreatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
