package usecase

import (
	"context"
	"errors"
	"time"

	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
	"dayhub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type bookingUsecase struct {
	bookingRepo     domain.BookingRepository
	interpreterRepo domain.InterpreterRepository
	validate        *validator.Validate
}

func NewBookingUsecase(
	bookingRepo domain.BookingRepository,
	interpreterRepo domain.InterpreterRepository,
	validate *validator.Validate,
) domain.BookingUsecase {
	return &bookingUsecase{
		bookingRepo:     bookingRepo,
		interpreterRepo: interpreterRepo,
		validate:        validate,
	}
}

func (u *bookingUsecase) Request(ctx context.Context, booking *domain.Booking) error {
	if booking.DurationMinutes == 0 {
		booking.DurationMinutes = 60
	}
	if err := u.validate.Struct(booking); err != nil {
		return apperror.BadRequest(validation.FirstValidationError(err))
	}
	if booking.ScheduledDate.Before(time.Now()) {
		return apperror.BadRequest("Scheduled date must be in the future")
	}

	interp, err := u.interpreterRepo.GetByID(ctx, booking.InterpreterID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Interpreter not found")
		}
		return err
	}
	if !interp.IsAvailable {
		return apperror.BadRequest("This interpreter is not currently accepting booking requests")
	}

	booking.Status = domain.BookingPending
	booking.CreatedAt = time.Now()
	return u.bookingRepo.Create(ctx, booking)
}

func (u *bookingUsecase) ListByRequester(ctx context.Context, email string) ([]domain.BookingWithInterpreter, error) {
	if email == "" {
		return nil, apperror.BadRequest("Requester email is required")
	}
	bookings, err := u.bookingRepo.FetchByRequesterEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.BookingWithInterpreter{}
	}
	return bookings, nil
}

// ListOwn returns bookings for the logged-in interpreter.
func (u *bookingUsecase) ListOwn(ctx context.Context) ([]domain.Booking, error) {
	id, _ := ctx.Value(domain.KeyInterpreterID).(int64)
	if id == 0 {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	bookings, err := u.bookingRepo.FetchByInterpreter(ctx, id)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

func (u *bookingUsecase) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	switch status {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted, domain.BookingCancelled:
	default:
		return nil, apperror.BadRequest("Status must be one of: pending, confirmed, completed, cancelled")
	}

	if err := u.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Booking not found")
		}
		return nil, err
	}
	return u.bookingRepo.GetByID(ctx, id)
}

func (u *bookingUsecase) Cancel(ctx context.Context, id int64) error {
	if err := u.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Booking not found")
		}
		return err
	}
	return nil
}
