package usecase

import (
	"context"
	"errors"
	"time"

	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/apperror"
	"dayhub-backend/pkg/geo"
	"dayhub-backend/pkg/logger"
	"dayhub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	topMetroCount   = 5
)

// Seed taxonomy lists served while the directory is still empty.
var (
	seedLanguages = []string{"Spanish", "French", "Chinese", "Arabic", "Russian", "Portuguese", "German", "Japanese"}
	seedMetros    = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego"}
	seedStates    = []string{"NY", "CA", "IL", "TX", "AZ", "PA"}
)

type interpreterUsecase struct {
	interpreterRepo domain.InterpreterRepository
	bookingRepo     domain.BookingRepository
	geocoder        geo.Geocoder
	validate        *validator.Validate
}

func NewInterpreterUsecase(
	interpreterRepo domain.InterpreterRepository,
	bookingRepo domain.BookingRepository,
	geocoder geo.Geocoder,
	validate *validator.Validate,
) domain.InterpreterUsecase {
	return &interpreterUsecase{
		interpreterRepo: interpreterRepo,
		bookingRepo:     bookingRepo,
		geocoder:        geocoder,
		validate:        validate,
	}
}

func (u *interpreterUsecase) Search(ctx context.Context, filter *domain.SearchFilter) (*domain.SearchResult, error) {
	if err := u.validate.Struct(filter); err != nil {
		return nil, apperror.BadRequest(validation.FirstValidationError(err))
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	u.resolveOrigin(ctx, filter)

	interpreters, total, err := u.interpreterRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if interpreters == nil {
		interpreters = []domain.Interpreter{}
	}

	if filter.OriginLat != nil && filter.OriginLng != nil {
		for i := range interpreters {
			interp := &interpreters[i]
			if interp.Latitude == nil || interp.Longitude == nil {
				continue
			}
			d := geo.HaversineMiles(*filter.OriginLat, *filter.OriginLng, *interp.Latitude, *interp.Longitude)
			interp.DistanceMiles = &d
		}
	}

	return &domain.SearchResult{
		Interpreters: interpreters,
		HasMore:      int64(filter.Offset+len(interpreters)) < total,
		Total:        total,
	}, nil
}

// resolveOrigin geocodes the filter's ZIP, if any. A failed geocode
// disables radius filtering and distance sort for the request instead of
// failing the search.
func (u *interpreterUsecase) resolveOrigin(ctx context.Context, filter *domain.SearchFilter) {
	wantsDistance := filter.SortBy == "distance" || filter.Radius > 0
	if filter.ZipCode == "" || !wantsDistance {
		return
	}

	coords, err := u.geocoder.Geocode(ctx, filter.ZipCode)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Warn("geocode failed, radius filter disabled",
				"zip", filter.ZipCode, "error", err)
		}
		filter.Radius = 0
		if filter.SortBy == "distance" {
			filter.SortBy = ""
		}
		return
	}

	filter.OriginLat = &coords.Lat
	filter.OriginLng = &coords.Lng
}

func (u *interpreterUsecase) Get(ctx context.Context, id int64) (*domain.Interpreter, error) {
	interp, err := u.interpreterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interpreter not found")
		}
		return nil, err
	}
	return interp, nil
}

func (u *interpreterUsecase) Create(ctx context.Context, interp *domain.Interpreter) error {
	if interp.SourceLanguage == "" {
		interp.SourceLanguage = "English"
	}
	if interp.ApprovalStatus == "" {
		interp.ApprovalStatus = domain.ApprovalPending
	}

	if err := u.validate.Struct(interp); err != nil {
		return apperror.BadRequest(validation.FirstValidationError(err))
	}

	if existing, err := u.interpreterRepo.GetByEmail(ctx, interp.Email); err == nil && existing != nil {
		return apperror.Conflict("An interpreter with this email already exists")
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	interp.CreatedAt = time.Now()
	interp.UpdatedAt = interp.CreatedAt

	if err := u.interpreterRepo.Create(ctx, interp); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return apperror.Conflict("An interpreter with this email already exists")
		}
		return err
	}
	return nil
}

func (u *interpreterUsecase) Update(ctx context.Context, interp *domain.Interpreter) error {
	existing, err := u.interpreterRepo.GetByID(ctx, interp.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Interpreter not found")
		}
		return err
	}

	if interp.SourceLanguage == "" {
		interp.SourceLanguage = existing.SourceLanguage
	}
	if interp.ApprovalStatus == "" {
		interp.ApprovalStatus = existing.ApprovalStatus
	}

	if err := u.validate.Struct(interp); err != nil {
		return apperror.BadRequest(validation.FirstValidationError(err))
	}

	interp.CreatedAt = existing.CreatedAt
	interp.Rating = existing.Rating
	interp.UpdatedAt = time.Now()

	if err := u.interpreterRepo.Update(ctx, interp); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return apperror.NotFound("Interpreter not found")
		case errors.Is(err, domain.ErrConflict):
			return apperror.Conflict("An interpreter with this email already exists")
		}
		return err
	}
	return nil
}

func (u *interpreterUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.interpreterRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Interpreter not found")
		}
		return err
	}
	return nil
}

func (u *interpreterUsecase) SetApprovalStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case domain.ApprovalPending, domain.ApprovalApproved, domain.ApprovalRejected:
	default:
		return apperror.BadRequest("Approval status must be one of: pending, approved, rejected")
	}

	if err := u.interpreterRepo.SetApprovalStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Interpreter not found")
		}
		return err
	}
	return nil
}

func (u *interpreterUsecase) GetOwnProfile(ctx context.Context) (*domain.Interpreter, error) {
	id, _ := ctx.Value(domain.KeyInterpreterID).(int64)
	if id == 0 {
		return nil, apperror.Unauthorized("Not authenticated")
	}
	return u.Get(ctx, id)
}

// UpdateOwnProfile applies an interpreter's self-service edits. Identity
// and trust fields (email, vetting, approval, rating) stay admin-only.
func (u *interpreterUsecase) UpdateOwnProfile(ctx context.Context, interp *domain.Interpreter) (*domain.Interpreter, error) {
	id, _ := ctx.Value(domain.KeyInterpreterID).(int64)
	if id == 0 {
		return nil, apperror.Unauthorized("Not authenticated")
	}

	existing, err := u.interpreterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Interpreter not found")
		}
		return nil, err
	}

	updated := *existing
	updated.FirstName = interp.FirstName
	updated.LastName = interp.LastName
	updated.Phone = interp.Phone
	updated.City = interp.City
	updated.State = interp.State
	updated.Metro = interp.Metro
	updated.Country = interp.Country
	updated.ZipCode = interp.ZipCode
	updated.Latitude = interp.Latitude
	updated.Longitude = interp.Longitude
	updated.SourceLanguage = interp.SourceLanguage
	updated.TargetLanguage = interp.TargetLanguage
	updated.Specialties = interp.Specialties
	updated.Certifications = interp.Certifications
	updated.YearsExperience = interp.YearsExperience
	updated.HourlyRate = interp.HourlyRate
	updated.ProficiencyLevel = interp.ProficiencyLevel
	updated.IsAvailable = interp.IsAvailable
	if updated.SourceLanguage == "" {
		updated.SourceLanguage = existing.SourceLanguage
	}

	if err := u.validate.Struct(&updated); err != nil {
		return nil, apperror.BadRequest(validation.FirstValidationError(err))
	}

	updated.UpdatedAt = time.Now()
	if err := u.interpreterRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *interpreterUsecase) Languages(ctx context.Context) ([]string, error) {
	return u.distinctOrSeed(ctx, u.interpreterRepo.DistinctLanguages, seedLanguages)
}

func (u *interpreterUsecase) Metros(ctx context.Context) ([]string, error) {
	return u.distinctOrSeed(ctx, u.interpreterRepo.DistinctMetros, seedMetros)
}

func (u *interpreterUsecase) States(ctx context.Context) ([]string, error) {
	return u.distinctOrSeed(ctx, u.interpreterRepo.DistinctStates, seedStates)
}

func (u *interpreterUsecase) distinctOrSeed(ctx context.Context, fetch func(context.Context) ([]string, error), seed []string) ([]string, error) {
	values, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return seed, nil
	}
	return values, nil
}

func (u *interpreterUsecase) Stats(ctx context.Context) (*domain.Stats, error) {
	totalInterpreters, err := u.interpreterRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalBookings, err := u.bookingRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	topMetros, err := u.interpreterRepo.TopMetros(ctx, topMetroCount)
	if err != nil {
		return nil, err
	}
	if topMetros == nil {
		topMetros = []domain.MetroCount{}
	}

	return &domain.Stats{
		TotalInterpreters: totalInterpreters,
		TotalBookings:     totalBookings,
		TopMetros:         topMetros,
	}, nil
}
