package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
	"dayhub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type reviewUsecase struct {
	reviewRepo      domain.ReviewRepository
	interpreterRepo domain.InterpreterRepository
	validate        *validator.Validate
}

func NewReviewUsecase(
	reviewRepo domain.ReviewRepository,
	interpreterRepo domain.InterpreterRepository,
	validate *validator.Validate,
) domain.ReviewUsecase {
	return &reviewUsecase{
		reviewRepo:      reviewRepo,
		interpreterRepo: interpreterRepo,
		validate:        validate,
	}
}

func (u *reviewUsecase) Submit(ctx context.Context, review *domain.Review) error {
	if err := u.validate.Struct(review); err != nil {
		return apperror.BadRequest(validation.FirstValidationError(err))
	}

	if _, err := u.interpreterRepo.GetByID(ctx, review.InterpreterID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Interpreter not found")
		}
		return err
	}

	review.Status = domain.ReviewPending
	review.CreatedAt = time.Now()
	return u.reviewRepo.Create(ctx, review)
}

func (u *reviewUsecase) ListApproved(ctx context.Context, interpreterID int64) ([]domain.Review, error) {
	reviews, err := u.reviewRepo.FetchByInterpreter(ctx, interpreterID, domain.ReviewApproved)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return reviews, nil
}

func (u *reviewUsecase) ListForModeration(ctx context.Context, status string, page, pageSize int) ([]domain.Review, int64, error) {
	if status == "" {
		status = domain.ReviewPending
	}
	switch status {
	case domain.ReviewPending, domain.ReviewApproved, domain.ReviewRejected:
	default:
		return nil, 0, apperror.BadRequest("Status must be one of: pending, approved, rejected")
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize

	return u.reviewRepo.FetchByStatus(ctx, status, pageSize, offset)
}

// Moderate sets a review's status and recomputes the interpreter's
// stored rating as the mean of approved reviews, one decimal place.
func (u *reviewUsecase) Moderate(ctx context.Context, id int64, status string) (*domain.Review, error) {
	switch status {
	case domain.ReviewApproved, domain.ReviewRejected:
	default:
		return nil, apperror.BadRequest("Status must be one of: approved, rejected")
	}

	review, err := u.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Review not found")
		}
		return nil, err
	}

	if err := u.reviewRepo.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Review not found")
		}
		return nil, err
	}
	review.Status = status

	if err := u.recomputeRating(ctx, review.InterpreterID); err != nil {
		return nil, err
	}

	return review, nil
}

func (u *reviewUsecase) recomputeRating(ctx context.Context, interpreterID int64) error {
	ratings, err := u.reviewRepo.ApprovedRatings(ctx, interpreterID)
	if err != nil {
		return err
	}

	rating := ""
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		rating = fmt.Sprintf("%.1f", float64(sum)/float64(len(ratings)))
	}

	return u.interpreterRepo.UpdateRating(ctx, interpreterID, rating)
}
