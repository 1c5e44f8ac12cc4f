package postgres

import (
	"context"
	"errors"

	"dayhub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) domain.BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	query := `INSERT INTO bookings (interpreter_id, requester_name, requester_email, scheduled_date, duration_minutes, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRow(ctx, query,
		booking.InterpreterID, booking.RequesterName, booking.RequesterEmail,
		booking.ScheduledDate, booking.DurationMinutes, booking.Notes,
		booking.Status, booking.CreatedAt,
	).Scan(&booking.ID)
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT id, interpreter_id, requester_name, requester_email, scheduled_date, duration_minutes, COALESCE(notes, ''), status, created_at
		FROM bookings WHERE id = $1`
	var b domain.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.InterpreterID, &b.RequesterName, &b.RequesterEmail,
		&b.ScheduledDate, &b.DurationMinutes, &b.Notes, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FetchByRequesterEmail joins interpreter contact details for display on
// the requester's bookings page.
func (r *bookingRepo) FetchByRequesterEmail(ctx context.Context, email string) ([]domain.BookingWithInterpreter, error) {
	query := `
		SELECT
			b.id, b.interpreter_id, b.requester_name, b.requester_email,
			b.scheduled_date, b.duration_minutes, COALESCE(b.notes, ''), b.status, b.created_at,
			COALESCE(i.first_name, ''), COALESCE(i.last_name, ''),
			COALESCE(i.email, ''), COALESCE(i.phone, '')
		FROM bookings b
		LEFT JOIN interpreters i ON b.interpreter_id = i.id
		WHERE LOWER(b.requester_email) = LOWER($1)
		ORDER BY b.scheduled_date DESC, b.id DESC`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.BookingWithInterpreter
	for rows.Next() {
		var b domain.BookingWithInterpreter
		if err := rows.Scan(
			&b.ID, &b.InterpreterID, &b.RequesterName, &b.RequesterEmail,
			&b.ScheduledDate, &b.DurationMinutes, &b.Notes, &b.Status, &b.CreatedAt,
			&b.InterpreterFirstName, &b.InterpreterLastName,
			&b.InterpreterEmail, &b.InterpreterPhone,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepo) FetchByInterpreter(ctx context.Context, interpreterID int64) ([]domain.Booking, error) {
	query := `SELECT id, interpreter_id, requester_name, requester_email, scheduled_date, duration_minutes, COALESCE(notes, ''), status, created_at
		FROM bookings WHERE interpreter_id = $1 ORDER BY scheduled_date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, interpreterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.InterpreterID, &b.RequesterName, &b.RequesterEmail,
			&b.ScheduledDate, &b.DurationMinutes, &b.Notes, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepo) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total)
	return total, err
}
