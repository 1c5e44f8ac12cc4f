package domain

import (
	"context"
	"time"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID              int64     `json:"id"`
	InterpreterID   int64     `json:"interpreterId" validate:"required"`
	RequesterName   string    `json:"requesterName" validate:"required,max=256"`
	RequesterEmail  string    `json:"requesterEmail" validate:"required,email"`
	ScheduledDate   time.Time `json:"scheduledDate" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" validate:"gte=15,lte=480"`
	Notes           string    `json:"notes" validate:"max=2000"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingWithInterpreter joins requester-facing booking rows with the
// interpreter contact shown on the bookings page.
type BookingWithInterpreter struct {
	Booking
	InterpreterFirstName string `json:"interpreterFirstName"`
	InterpreterLastName  string `json:"interpreterLastName"`
	InterpreterEmail     string `json:"interpreterEmail"`
	InterpreterPhone     string `json:"interpreterPhone"`
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	FetchByRequesterEmail(ctx context.Context, email string) ([]BookingWithInterpreter, error)
	FetchByInterpreter(ctx context.Context, interpreterID int64) ([]Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	CountAll(ctx context.Context) (int64, error)
}

type BookingUsecase interface {
	Request(ctx context.Context, booking *Booking) error
	ListByRequester(ctx context.Context, email string) ([]BookingWithInterpreter, error)
	ListOwn(ctx context.Context) ([]Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Booking, error)
	Cancel(ctx context.Context, id int64) error
}
