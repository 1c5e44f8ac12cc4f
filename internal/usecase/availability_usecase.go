package usecase

import (
	"context"
	"fmt"
	"time"

	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
	"dayhub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const maxAvailabilitySlots = 21

type availabilityUsecase struct {
	availabilityRepo domain.AvailabilityRepository
	validate         *validator.Validate
}

func NewAvailabilityUsecase(availabilityRepo domain.AvailabilityRepository, validate *validator.Validate) domain.AvailabilityUsecase {
	return &availabilityUsecase{
		availabilityRepo: availabilityRepo,
		validate:         validate,
	}
}

func (u *availabilityUsecase) Get(ctx context.Context, interpreterID int64) ([]domain.AvailabilitySlot, error) {
	slots, err := u.availabilityRepo.FetchByInterpreter(ctx, interpreterID)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []domain.AvailabilitySlot{}
	}
	return slots, nil
}

func (u *availabilityUsecase) ReplaceOwn(ctx context.Context, slots []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
	interpreterID, ok := ctx.Value(domain.KeyInterpreterID).(int64)
	if !ok {
		return nil, apperror.Unauthorized("Login required")
	}

	if len(slots) > maxAvailabilitySlots {
		return nil, apperror.BadRequest(fmt.Sprintf("At most %d availability slots are allowed", maxAvailabilitySlots))
	}

	for i := range slots {
		slot := &slots[i]
		if err := u.validate.Struct(slot); err != nil {
			return nil, apperror.BadRequest(validation.FirstValidationError(err))
		}

		start, err := time.Parse("15:04", slot.StartTime)
		if err != nil {
			return nil, apperror.BadRequest("Start time must be in HH:MM format")
		}
		end, err := time.Parse("15:04", slot.EndTime)
		if err != nil {
			return nil, apperror.BadRequest("End time must be in HH:MM format")
		}
		if !start.Before(end) {
			return nil, apperror.BadRequest("Start time must be before end time")
		}

		slot.InterpreterID = interpreterID
	}

	if err := u.availabilityRepo.ReplaceForInterpreter(ctx, interpreterID, slots); err != nil {
		return nil, err
	}

	return u.Get(ctx, interpreterID)
}
