package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
	"dayhub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type savedSearchUsecase struct {
	savedSearchRepo domain.SavedSearchRepository
	favoriteRepo    domain.FavoriteRepository
	interpreterRepo domain.InterpreterRepository
	validate        *validator.Validate
}

func NewSavedSearchUsecase(
	savedSearchRepo domain.SavedSearchRepository,
	favoriteRepo domain.FavoriteRepository,
	interpreterRepo domain.InterpreterRepository,
	validate *validator.Validate,
) domain.SavedSearchUsecase {
	return &savedSearchUsecase{
		savedSearchRepo: savedSearchRepo,
		favoriteRepo:    favoriteRepo,
		interpreterRepo: interpreterRepo,
		validate:        validate,
	}
}

func (u *savedSearchUsecase) Create(ctx context.Context, search *domain.SavedSearch) error {
	if err := u.validate.Struct(search); err != nil {
		return apperror.BadRequest(validation.FirstValidationError(err))
	}
	// Filters are opaque to the server but must at least be JSON
	if !json.Valid([]byte(search.Filters)) {
		return apperror.BadRequest("Filters must be valid JSON")
	}

	search.CreatedAt = time.Now()
	return u.savedSearchRepo.Create(ctx, search)
}

func (u *savedSearchUsecase) List(ctx context.Context, ownerEmail string) ([]domain.SavedSearch, error) {
	if ownerEmail == "" {
		return nil, apperror.BadRequest("Owner email is required")
	}
	searches, err := u.savedSearchRepo.FetchByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	if searches == nil {
		searches = []domain.SavedSearch{}
	}
	return searches, nil
}

func (u *savedSearchUsecase) Delete(ctx context.Context, id int64, ownerEmail string) error {
	if err := u.savedSearchRepo.Delete(ctx, id, ownerEmail); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Saved search not found")
		}
		return err
	}
	return nil
}

func (u *savedSearchUsecase) AddFavorite(ctx context.Context, fav *domain.Favorite) error {
	if err := u.validate.Struct(fav); err != nil {
		return apperror.BadRequest(validation.FirstValidationError(err))
	}

	if _, err := u.interpreterRepo.GetByID(ctx, fav.InterpreterID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Interpreter not found")
		}
		return err
	}

	fav.CreatedAt = time.Now()
	if err := u.favoriteRepo.Put(ctx, fav); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Already bookmarked; adding again is a no-op
			return nil
		}
		return err
	}
	return nil
}

func (u *savedSearchUsecase) RemoveFavorite(ctx context.Context, ownerEmail string, interpreterID int64) error {
	if err := u.favoriteRepo.Delete(ctx, ownerEmail, interpreterID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Favorite not found")
		}
		return err
	}
	return nil
}

func (u *savedSearchUsecase) ListFavorites(ctx context.Context, ownerEmail string) ([]domain.Interpreter, error) {
	if ownerEmail == "" {
		return nil, apperror.BadRequest("Owner email is required")
	}
	interpreters, err := u.favoriteRepo.FetchInterpreters(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}
	if interpreters == nil {
		interpreters = []domain.Interpreter{}
	}
	return interpreters, nil
}
