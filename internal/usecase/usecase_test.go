package usecase_test

import (
	"context"
	"testing"
	"time"

	"dayhub-backend/config"
	"dayhub-backend/internal/domain"
	"dayhub-backend/internal/usecase"
	"dayhub-backend/pkg/auth"
	"dayhub-backend/pkg/geo"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockInterpreterRepo struct {
	mock.Mock
}

func (m *MockInterpreterRepo) Search(ctx context.Context, filter *domain.SearchFilter) ([]domain.Interpreter, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Interpreter), args.Get(1).(int64), args.Error(2)
}

func (m *MockInterpreterRepo) GetByID(ctx context.Context, id int64) (*domain.Interpreter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interpreter), args.Error(1)
}

func (m *MockInterpreterRepo) GetByEmail(ctx context.Context, email string) (*domain.Interpreter, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interpreter), args.Error(1)
}

func (m *MockInterpreterRepo) Create(ctx context.Context, interp *domain.Interpreter) error {
	return m.Called(ctx, interp).Error(0)
}

func (m *MockInterpreterRepo) Update(ctx context.Context, interp *domain.Interpreter) error {
	return m.Called(ctx, interp).Error(0)
}

func (m *MockInterpreterRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInterpreterRepo) SetApprovalStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockInterpreterRepo) UpdateRating(ctx context.Context, id int64, rating string) error {
	return m.Called(ctx, id, rating).Error(0)
}

func (m *MockInterpreterRepo) SetFileURL(ctx context.Context, id int64, column, url string) error {
	return m.Called(ctx, id, column, url).Error(0)
}

func (m *MockInterpreterRepo) DistinctLanguages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInterpreterRepo) DistinctMetros(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInterpreterRepo) DistinctStates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInterpreterRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInterpreterRepo) TopMetros(ctx context.Context, limit int) ([]domain.MetroCount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MetroCount), args.Error(1)
}

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) FetchByRequesterEmail(ctx context.Context, email string) ([]domain.BookingWithInterpreter, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookingWithInterpreter), args.Error(1)
}

func (m *MockBookingRepo) FetchByInterpreter(ctx context.Context, interpreterID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, interpreterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockBookingRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepo) FetchByInterpreter(ctx context.Context, interpreterID int64, status string) ([]domain.Review, error) {
	args := m.Called(ctx, interpreterID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepo) FetchByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Review, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockReviewRepo) ApprovedRatings(ctx context.Context, interpreterID int64) ([]int, error) {
	args := m.Called(ctx, interpreterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type MockLoginTokenRepo struct {
	mock.Mock
}

func (m *MockLoginTokenRepo) Create(ctx context.Context, token *domain.LoginToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockLoginTokenRepo) GetByHash(ctx context.Context, tokenHash string) (*domain.LoginToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginToken), args.Error(1)
}

func (m *MockLoginTokenRepo) MarkUsed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLoginTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, zip string) (*geo.Coordinates, error) {
	args := m.Called(ctx, zip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geo.Coordinates), args.Error(1)
}

func newInterpreterUC(repo *MockInterpreterRepo, bookings *MockBookingRepo, geocoder *MockGeocoder) domain.InterpreterUsecase {
	return usecase.NewInterpreterUsecase(repo, bookings, geocoder, validator.New())
}

func sampleInterpreters(n int) []domain.Interpreter {
	out := make([]domain.Interpreter, n)
	for i := range out {
		out[i] = domain.Interpreter{
			ID:             int64(i + 1),
			FirstName:      "Maria",
			LastName:       "Gonzalez",
			Email:          "maria@example.com",
			TargetLanguage: "Spanish",
			ApprovalStatus: domain.ApprovalApproved,
		}
	}
	return out
}

func TestSearchPagination(t *testing.T) {
	t.Run("Should apply default page size and report hasMore", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), new(MockGeocoder))

		mockRepo.On("Search", mock.Anything, mock.MatchedBy(func(f *domain.SearchFilter) bool {
			return f.Limit == 20 && f.Offset == 0
		})).Return(sampleInterpreters(20), int64(45), nil)

		result, err := uc.Search(context.Background(), &domain.SearchFilter{})
		assert.NoError(t, err)
		assert.Len(t, result.Interpreters, 20)
		assert.True(t, result.HasMore)
		assert.Equal(t, int64(45), result.Total)
	})

	t.Run("Should clamp oversized limits to 100", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), new(MockGeocoder))

		mockRepo.On("Search", mock.Anything, mock.MatchedBy(func(f *domain.SearchFilter) bool {
			return f.Limit == 100
		})).Return(sampleInterpreters(3), int64(3), nil)

		result, err := uc.Search(context.Background(), &domain.SearchFilter{Limit: 5000})
		assert.NoError(t, err)
		assert.False(t, result.HasMore)
	})

	t.Run("Should report hasMore false on the last page", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), new(MockGeocoder))

		mockRepo.On("Search", mock.Anything, mock.Anything).
			Return(sampleInterpreters(5), int64(45), nil)

		result, err := uc.Search(context.Background(), &domain.SearchFilter{Limit: 20, Offset: 40})
		assert.NoError(t, err)
		assert.False(t, result.HasMore)
	})
}

func TestSearchValidation(t *testing.T) {
	uc := newInterpreterUC(new(MockInterpreterRepo), new(MockBookingRepo), new(MockGeocoder))

	t.Run("Should reject unknown sort fields and name the field", func(t *testing.T) {
		_, err := uc.Search(context.Background(), &domain.SearchFilter{SortBy: "salary"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Sort field")
	})

	t.Run("Should reject negative offsets", func(t *testing.T) {
		_, err := uc.Search(context.Background(), &domain.SearchFilter{Offset: -1})
		assert.Error(t, err)
	})
}

func TestSearchGeocoding(t *testing.T) {
	t.Run("Should disable radius filtering when geocoding fails", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		mockGeo := new(MockGeocoder)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), mockGeo)

		mockGeo.On("Geocode", mock.Anything, "99999").Return(nil, assert.AnError)
		mockRepo.On("Search", mock.Anything, mock.MatchedBy(func(f *domain.SearchFilter) bool {
			return f.Radius == 0 && f.OriginLat == nil && f.SortBy == ""
		})).Return(sampleInterpreters(1), int64(1), nil)

		result, err := uc.Search(context.Background(), &domain.SearchFilter{
			ZipCode: "99999",
			Radius:  25,
			SortBy:  "distance",
		})
		assert.NoError(t, err)
		assert.Len(t, result.Interpreters, 1)
		mockGeo.AssertExpectations(t)
	})

	t.Run("Should attach origin coordinates when geocoding succeeds", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		mockGeo := new(MockGeocoder)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), mockGeo)

		mockGeo.On("Geocode", mock.Anything, "10001").
			Return(&geo.Coordinates{Lat: 40.75, Lng: -73.99}, nil)
		mockRepo.On("Search", mock.Anything, mock.MatchedBy(func(f *domain.SearchFilter) bool {
			return f.OriginLat != nil && *f.OriginLat == 40.75 && f.Radius == 25
		})).Return(sampleInterpreters(1), int64(1), nil)

		_, err := uc.Search(context.Background(), &domain.SearchFilter{ZipCode: "10001", Radius: 25})
		assert.NoError(t, err)
	})

	t.Run("Should annotate results with miles from the origin", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		mockGeo := new(MockGeocoder)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), mockGeo)

		laLat, laLng := 34.05, -118.24
		matches := []domain.Interpreter{
			{ID: 1, FirstName: "Wei", Latitude: &laLat, Longitude: &laLng},
			{ID: 2, FirstName: "John"},
		}
		mockGeo.On("Geocode", mock.Anything, "10001").
			Return(&geo.Coordinates{Lat: 40.75, Lng: -73.99}, nil)
		mockRepo.On("Search", mock.Anything, mock.Anything).
			Return(matches, int64(2), nil)

		result, err := uc.Search(context.Background(), &domain.SearchFilter{
			ZipCode: "10001",
			SortBy:  "distance",
		})
		assert.NoError(t, err)
		assert.NotNil(t, result.Interpreters[0].DistanceMiles)
		assert.InDelta(t, 2445, *result.Interpreters[0].DistanceMiles, 20)
		// No stored coordinates, no distance
		assert.Nil(t, result.Interpreters[1].DistanceMiles)
	})

	t.Run("Should skip geocoding when no radius or distance sort is requested", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		mockGeo := new(MockGeocoder)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), mockGeo)

		mockRepo.On("Search", mock.Anything, mock.Anything).
			Return(sampleInterpreters(1), int64(1), nil)

		_, err := uc.Search(context.Background(), &domain.SearchFilter{ZipCode: "10001"})
		assert.NoError(t, err)
		mockGeo.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	})
}

func TestInterpreterCreate(t *testing.T) {
	t.Run("Should reject duplicate emails with a conflict", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), new(MockGeocoder))

		existing := &domain.Interpreter{ID: 7, Email: "maria@example.com"}
		mockRepo.On("GetByEmail", mock.Anything, "maria@example.com").Return(existing, nil)

		err := uc.Create(context.Background(), &domain.Interpreter{
			FirstName:      "Maria",
			LastName:       "Gonzalez",
			Email:          "maria@example.com",
			TargetLanguage: "Spanish",
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Should default source language and approval status", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), new(MockGeocoder))

		mockRepo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.Interpreter) bool {
			return i.SourceLanguage == "English" && i.ApprovalStatus == domain.ApprovalPending
		})).Return(nil)

		err := uc.Create(context.Background(), &domain.Interpreter{
			FirstName:      "Wei",
			LastName:       "Chen",
			Email:          "wei@example.com",
			TargetLanguage: "Chinese",
		})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should reject records missing required fields", func(t *testing.T) {
		uc := newInterpreterUC(new(MockInterpreterRepo), new(MockBookingRepo), new(MockGeocoder))

		err := uc.Create(context.Background(), &domain.Interpreter{FirstName: "John"})
		assert.Error(t, err)
	})
}

func TestOwnProfile(t *testing.T) {
	t.Run("Should fail safely without a session", func(t *testing.T) {
		uc := newInterpreterUC(new(MockInterpreterRepo), new(MockBookingRepo), new(MockGeocoder))

		_, err := uc.GetOwnProfile(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Not authenticated")
	})

	t.Run("Should keep trust fields out of self-service edits", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), new(MockGeocoder))

		existing := &domain.Interpreter{
			ID:             4,
			FirstName:      "Maria",
			LastName:       "Gonzalez",
			Email:          "maria@example.com",
			TargetLanguage: "Spanish",
			IsVetted:       true,
			ApprovalStatus: domain.ApprovalApproved,
			Rating:         "4.8",
		}
		mockRepo.On("GetByID", mock.Anything, int64(4)).Return(existing, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(i *domain.Interpreter) bool {
			return i.Email == "maria@example.com" &&
				i.IsVetted &&
				i.ApprovalStatus == domain.ApprovalApproved &&
				i.Rating == "4.8" &&
				i.Phone == "555-0101"
		})).Return(nil)

		ctx := context.WithValue(context.Background(), domain.KeyInterpreterID, int64(4))
		updated, err := uc.UpdateOwnProfile(ctx, &domain.Interpreter{
			FirstName:      "Maria",
			LastName:       "Gonzalez",
			Email:          "takeover@example.com",
			Phone:          "555-0101",
			TargetLanguage: "Spanish",
		})
		assert.NoError(t, err)
		assert.Equal(t, "maria@example.com", updated.Email)
		mockRepo.AssertExpectations(t)
	})
}

func TestTaxonomySeeds(t *testing.T) {
	t.Run("Should serve seed languages while the directory is empty", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), new(MockGeocoder))

		mockRepo.On("DistinctLanguages", mock.Anything).Return([]string{}, nil)

		languages, err := uc.Languages(context.Background())
		assert.NoError(t, err)
		assert.Contains(t, languages, "Spanish")
	})

	t.Run("Should prefer stored languages once present", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := newInterpreterUC(mockRepo, new(MockBookingRepo), new(MockGeocoder))

		mockRepo.On("DistinctLanguages", mock.Anything).Return([]string{"Tagalog"}, nil)

		languages, err := uc.Languages(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"Tagalog"}, languages)
	})
}

func TestCSVImport(t *testing.T) {
	t.Run("Should import valid rows and report bad ones", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := usecase.NewCSVUsecase(mockRepo)

		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		csvData := "name,email,target_language,specialties\n" +
			"Maria Gonzalez,maria@example.com,Spanish,Medical;Legal\n" +
			"John Smith,john@example.com,French,\n" +
			",missing@example.com,German,\n" +
			"Wei Chen,wei@example.com,Chinese,Business\n"

		result, err := uc.Import(context.Background(), csvData)
		assert.NoError(t, err)
		assert.Equal(t, 3, result.Success)
		assert.Equal(t, 1, result.Failed)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, 4, result.Errors[0].Row)
		assert.Contains(t, result.Errors[0].Reason, "missing name")
	})

	t.Run("Should split semicolon specialties and default availability", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := usecase.NewCSVUsecase(mockRepo)

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.Interpreter) bool {
			return len(i.Specialties) == 2 &&
				i.Specialties[0] == "Medical" &&
				i.IsAvailable &&
				i.ApprovalStatus == domain.ApprovalPending &&
				i.SourceLanguage == "English"
		})).Return(nil)

		csvData := "name,email,target_language,specialties\n" +
			"Maria Gonzalez,maria@example.com,Spanish,Medical; Legal\n"

		result, err := uc.Import(context.Background(), csvData)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Success)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should report duplicate emails per row without aborting", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := usecase.NewCSVUsecase(mockRepo)

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.Interpreter) bool {
			return i.Email == "dup@example.com"
		})).Return(domain.ErrConflict)
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		csvData := "name,email,target_language\n" +
			"Maria Gonzalez,dup@example.com,Spanish\n" +
			"John Smith,john@example.com,French\n"

		result, err := uc.Import(context.Background(), csvData)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Success)
		assert.Equal(t, 1, result.Failed)
		assert.Contains(t, result.Errors[0].Reason, "duplicate email")
	})

	t.Run("Should reject a CSV without required header columns", func(t *testing.T) {
		uc := usecase.NewCSVUsecase(new(MockInterpreterRepo))

		_, err := uc.Import(context.Background(), "name,phone\nMaria,555\n")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}

func TestCSVValidate(t *testing.T) {
	t.Run("Should flag column count mismatches per row", func(t *testing.T) {
		uc := usecase.NewCSVUsecase(new(MockInterpreterRepo))

		csvData := "name,email,target_language\n" +
			"Maria Gonzalez,maria@example.com,Spanish\n" +
			"John Smith,john@example.com\n"

		result, err := uc.Validate(context.Background(), csvData)
		assert.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, 2, result.Rows)
		assert.Len(t, result.Errors, 1)
		assert.Equal(t, 3, result.Errors[0].Row)
		assert.Contains(t, result.Errors[0].Reason, "columns")
	})

	t.Run("Should pass a clean file without writes", func(t *testing.T) {
		mockRepo := new(MockInterpreterRepo)
		uc := usecase.NewCSVUsecase(mockRepo)

		csvData := "name,email,target_language\n" +
			"Maria Gonzalez,maria@example.com,Spanish\n"

		result, err := uc.Validate(context.Background(), csvData)
		assert.NoError(t, err)
		assert.True(t, result.Valid)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCSVExport(t *testing.T) {
	mockRepo := new(MockInterpreterRepo)
	uc := usecase.NewCSVUsecase(mockRepo)

	mockRepo.On("Search", mock.Anything, mock.MatchedBy(func(f *domain.SearchFilter) bool {
		return f.Offset == 0 && f.Limit > 1000000
	})).Return([]domain.Interpreter{
		{
			FirstName:      "Maria",
			LastName:       "Gonzalez",
			Email:          "maria@example.com",
			TargetLanguage: "Spanish",
			Specialties:    []string{"Medical", "Legal"},
		},
	}, int64(1), nil)

	result, err := uc.Export(context.Background(), &domain.SearchFilter{})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Contains(t, result.CSV, "first_name,last_name,email")
	assert.Contains(t, result.CSV, "Medical;Legal")
}

func TestReviewModeration(t *testing.T) {
	t.Run("Should recompute the mean rating on approval", func(t *testing.T) {
		mockReviews := new(MockReviewRepo)
		mockInterp := new(MockInterpreterRepo)
		uc := usecase.NewReviewUsecase(mockReviews, mockInterp, validator.New())

		review := &domain.Review{ID: 9, InterpreterID: 3, Rating: 4, Status: domain.ReviewPending}
		mockReviews.On("GetByID", mock.Anything, int64(9)).Return(review, nil)
		mockReviews.On("SetStatus", mock.Anything, int64(9), domain.ReviewApproved).Return(nil)
		mockReviews.On("ApprovedRatings", mock.Anything, int64(3)).Return([]int{5, 5, 4}, nil)
		mockInterp.On("UpdateRating", mock.Anything, int64(3), "4.7").Return(nil)

		moderated, err := uc.Moderate(context.Background(), 9, domain.ReviewApproved)
		assert.NoError(t, err)
		assert.Equal(t, domain.ReviewApproved, moderated.Status)
		mockInterp.AssertExpectations(t)
	})

	t.Run("Should clear the rating when no approved reviews remain", func(t *testing.T) {
		mockReviews := new(MockReviewRepo)
		mockInterp := new(MockInterpreterRepo)
		uc := usecase.NewReviewUsecase(mockReviews, mockInterp, validator.New())

		review := &domain.Review{ID: 2, InterpreterID: 3, Status: domain.ReviewApproved}
		mockReviews.On("GetByID", mock.Anything, int64(2)).Return(review, nil)
		mockReviews.On("SetStatus", mock.Anything, int64(2), domain.ReviewRejected).Return(nil)
		mockReviews.On("ApprovedRatings", mock.Anything, int64(3)).Return([]int{}, nil)
		mockInterp.On("UpdateRating", mock.Anything, int64(3), "").Return(nil)

		_, err := uc.Moderate(context.Background(), 2, domain.ReviewRejected)
		assert.NoError(t, err)
		mockInterp.AssertExpectations(t)
	})

	t.Run("Should refuse statuses other than approved or rejected", func(t *testing.T) {
		uc := usecase.NewReviewUsecase(new(MockReviewRepo), new(MockInterpreterRepo), validator.New())

		_, err := uc.Moderate(context.Background(), 1, "pending")
		assert.Error(t, err)
	})

	t.Run("Should reject submissions for unknown interpreters", func(t *testing.T) {
		mockReviews := new(MockReviewRepo)
		mockInterp := new(MockInterpreterRepo)
		uc := usecase.NewReviewUsecase(mockReviews, mockInterp, validator.New())

		mockInterp.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

		err := uc.Submit(context.Background(), &domain.Review{
			InterpreterID: 404,
			ReviewerName:  "Ana",
			Rating:        5,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestBookingRequest(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)

	t.Run("Should default duration and start pending", func(t *testing.T) {
		mockBookings := new(MockBookingRepo)
		mockInterp := new(MockInterpreterRepo)
		uc := usecase.NewBookingUsecase(mockBookings, mockInterp, validator.New())

		mockInterp.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Interpreter{ID: 1, IsAvailable: true}, nil)
		mockBookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.DurationMinutes == 60 && b.Status == domain.BookingPending
		})).Return(nil)

		err := uc.Request(context.Background(), &domain.Booking{
			InterpreterID:  1,
			RequesterName:  "Ana",
			RequesterEmail: "ana@example.com",
			ScheduledDate:  future,
		})
		assert.NoError(t, err)
		mockBookings.AssertExpectations(t)
	})

	t.Run("Should reject past dates", func(t *testing.T) {
		uc := usecase.NewBookingUsecase(new(MockBookingRepo), new(MockInterpreterRepo), validator.New())

		err := uc.Request(context.Background(), &domain.Booking{
			InterpreterID:  1,
			RequesterName:  "Ana",
			RequesterEmail: "ana@example.com",
			ScheduledDate:  time.Now().Add(-time.Hour),
		})
		assert.Error(t, err)
	})

	t.Run("Should reject unavailable interpreters", func(t *testing.T) {
		mockInterp := new(MockInterpreterRepo)
		uc := usecase.NewBookingUsecase(new(MockBookingRepo), mockInterp, validator.New())

		mockInterp.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Interpreter{ID: 1, IsAvailable: false}, nil)

		err := uc.Request(context.Background(), &domain.Booking{
			InterpreterID:  1,
			RequesterName:  "Ana",
			RequesterEmail: "ana@example.com",
			ScheduledDate:  future,
		})
		assert.Error(t, err)
	})
}

func testAuthConfig() *config.Config {
	return &config.Config{
		FrontendURL:          "http://localhost:3000",
		SessionSecret:        "test-secret",
		AdminPassword:        "hunter2",
		LoginTokenTTLMinutes: 15,
		SessionTokenTTLHours: 24,
	}
}

func TestMagicLinkVerify(t *testing.T) {
	t.Run("Should mint an interpreter session for a fresh token", func(t *testing.T) {
		mockTokens := new(MockLoginTokenRepo)
		mockInterp := new(MockInterpreterRepo)
		cfg := testAuthConfig()
		uc := usecase.NewAuthUsecase(mockInterp, mockTokens, nil, cfg)

		stored := &domain.LoginToken{
			ID:            1,
			InterpreterID: 4,
			ExpiresAt:     time.Now().Add(10 * time.Minute),
		}
		mockTokens.On("GetByHash", mock.Anything, mock.Anything).Return(stored, nil)
		mockTokens.On("MarkUsed", mock.Anything, int64(1)).Return(nil)
		mockInterp.On("GetByID", mock.Anything, int64(4)).
			Return(&domain.Interpreter{ID: 4, Email: "maria@example.com"}, nil)

		result, err := uc.VerifyInterpreterLogin(context.Background(), "some-token")
		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)

		claims, err := auth.ParseSession(cfg.SessionSecret, result.Token)
		assert.NoError(t, err)
		assert.Equal(t, auth.RoleInterpreter, claims.Role)
		assert.Equal(t, int64(4), claims.InterpreterID)
	})

	t.Run("Should reject an already used token", func(t *testing.T) {
		mockTokens := new(MockLoginTokenRepo)
		uc := usecase.NewAuthUsecase(new(MockInterpreterRepo), mockTokens, nil, testAuthConfig())

		used := time.Now().Add(-time.Minute)
		stored := &domain.LoginToken{
			ID:            1,
			InterpreterID: 4,
			ExpiresAt:     time.Now().Add(10 * time.Minute),
			UsedAt:        &used,
		}
		mockTokens.On("GetByHash", mock.Anything, mock.Anything).Return(stored, nil)

		_, err := uc.VerifyInterpreterLogin(context.Background(), "some-token")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid or has expired")
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		mockTokens := new(MockLoginTokenRepo)
		uc := usecase.NewAuthUsecase(new(MockInterpreterRepo), mockTokens, nil, testAuthConfig())

		stored := &domain.LoginToken{
			ID:            1,
			InterpreterID: 4,
			ExpiresAt:     time.Now().Add(-time.Minute),
		}
		mockTokens.On("GetByHash", mock.Anything, mock.Anything).Return(stored, nil)

		_, err := uc.VerifyInterpreterLogin(context.Background(), "some-token")
		assert.Error(t, err)
	})

	t.Run("Should reject an unknown token", func(t *testing.T) {
		mockTokens := new(MockLoginTokenRepo)
		uc := usecase.NewAuthUsecase(new(MockInterpreterRepo), mockTokens, nil, testAuthConfig())

		mockTokens.On("GetByHash", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

		_, err := uc.VerifyInterpreterLogin(context.Background(), "bogus")
		assert.Error(t, err)
	})

	t.Run("Should succeed silently for unknown emails", func(t *testing.T) {
		mockTokens := new(MockLoginTokenRepo)
		mockInterp := new(MockInterpreterRepo)
		uc := usecase.NewAuthUsecase(mockInterp, mockTokens, nil, testAuthConfig())

		mockInterp.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

		err := uc.RequestInterpreterLogin(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		mockTokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAdminLogin(t *testing.T) {
	uc := usecase.NewAuthUsecase(new(MockInterpreterRepo), new(MockLoginTokenRepo), nil, testAuthConfig())

	t.Run("Should mint an admin session for the right password", func(t *testing.T) {
		token, err := uc.AdminLogin(context.Background(), "hunter2")
		assert.NoError(t, err)

		claims, err := auth.ParseSession("test-secret", token)
		assert.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, claims.Role)
	})

	t.Run("Should reject a wrong password", func(t *testing.T) {
		_, err := uc.AdminLogin(context.Background(), "wrong")
		assert.Error(t, err)
	})

	t.Run("Should refuse logins when no password is configured", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.AdminPassword = ""
		unconfigured := usecase.NewAuthUsecase(new(MockInterpreterRepo), new(MockLoginTokenRepo), nil, cfg)

		_, err := unconfigured.AdminLogin(context.Background(), "")
		assert.Error(t, err)
	})
}
