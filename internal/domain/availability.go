package domain

import "context"

// AvailabilitySlot is one weekly recurring window on an interpreter's
// calendar. Times are "HH:MM" in the interpreter's local time.
type AvailabilitySlot struct {
	ID            int64    `json:"id"`
	InterpreterID int64    `json:"interpreterId"`
	Weekdays      []string `json:"weekdays" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime     string   `json:"startTime" validate:"required,len=5"`
	EndTime       string   `json:"endTime" validate:"required,len=5"`
}

type AvailabilityRepository interface {
	FetchByInterpreter(ctx context.Context, interpreterID int64) ([]AvailabilitySlot, error)
	ReplaceForInterpreter(ctx context.Context, interpreterID int64, slots []AvailabilitySlot) error
}

type AvailabilityUsecase interface {
	Get(ctx context.Context, interpreterID int64) ([]AvailabilitySlot, error)
	ReplaceOwn(ctx context.Context, slots []AvailabilitySlot) ([]AvailabilitySlot, error)
}
