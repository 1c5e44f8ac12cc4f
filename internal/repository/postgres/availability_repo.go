package postgres

import (
	"context"

	"dayhub-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type availabilityRepo struct {
	db *pgxpool.Pool
}

func NewAvailabilityRepository(db *pgxpool.Pool) domain.AvailabilityRepository {
	return &availabilityRepo{db: db}
}

func (r *availabilityRepo) FetchByInterpreter(ctx context.Context, interpreterID int64) ([]domain.AvailabilitySlot, error) {
	query := `SELECT id, interpreter_id, weekdays, start_time, end_time
		FROM availability_slots WHERE interpreter_id = $1 ORDER BY id ASC`
	rows, err := r.db.Query(ctx, query, interpreterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []domain.AvailabilitySlot
	for rows.Next() {
		var slot domain.AvailabilitySlot
		var weekdays []string
		if err := rows.Scan(&slot.ID, &slot.InterpreterID, pq.Array(&weekdays), &slot.StartTime, &slot.EndTime); err != nil {
			return nil, err
		}
		slot.Weekdays = weekdays
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// ReplaceForInterpreter swaps the interpreter's whole weekly calendar in
// one transaction so a partial write never shows up in a read.
func (r *availabilityRepo) ReplaceForInterpreter(ctx context.Context, interpreterID int64, slots []domain.AvailabilitySlot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM availability_slots WHERE interpreter_id = $1`, interpreterID); err != nil {
		return err
	}

	query := `INSERT INTO availability_slots (interpreter_id, weekdays, start_time, end_time)
		VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range slots {
		slots[i].InterpreterID = interpreterID
		if err := tx.QueryRow(ctx, query,
			interpreterID, pq.Array(slots[i].Weekdays), slots[i].StartTime, slots[i].EndTime,
		).Scan(&slots[i].ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
