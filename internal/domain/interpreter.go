package domain

import (
	"context"
	"time"
)

// Approval statuses for interpreter records.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Interpreter struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"firstName" validate:"required,max=256"`
	LastName         string    `json:"lastName" validate:"required,max=256"`
	Email            string    `json:"email" validate:"required,email"`
	Phone            string    `json:"phone" validate:"max=50"`
	City             string    `json:"city" validate:"max=256"`
	State            string    `json:"state" validate:"max=256"`
	Metro            string    `json:"metro" validate:"max=256"`
	Country          string    `json:"country" validate:"max=256"`
	ZipCode          string    `json:"zipCode" validate:"max=10"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	SourceLanguage   string    `json:"sourceLanguage" validate:"max=256"`
	TargetLanguage   string    `json:"targetLanguage" validate:"required,max=256"`
	Specialties      []string  `json:"specialties"`
	Certifications   string    `json:"certifications" validate:"max=1000"`
	YearsExperience  int       `json:"yearsExperience" validate:"gte=0,lte=80"`
	HourlyRate       float64   `json:"hourlyRate" validate:"gte=0"`
	ProficiencyLevel string    `json:"proficiencyLevel" validate:"max=100"`
	IsAvailable      bool      `json:"isAvailable"`
	IsVetted         bool      `json:"isVetted"`
	ApprovalStatus   string    `json:"approvalStatus" validate:"omitempty,oneof=pending approved rejected"`
	Rating           string    `json:"rating"`
	PhotoURL         string    `json:"photoUrl"`
	ResumeURL        string    `json:"resumeUrl"`
	VoiceClipURL     string    `json:"voiceClipUrl"`
	CertificationURL string    `json:"certificationUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// DistanceMiles is set on search results when the request resolved an
	// origin ZIP. Never stored.
	DistanceMiles *float64 `json:"distanceMiles,omitempty"`
}

// SearchFilter is the full predicate set for interpreter search.
// All filters are conjunctive; zero values mean "not provided".
type SearchFilter struct {
	Query             string   `form:"query" validate:"max=256"`
	SourceLanguage    string   `form:"sourceLanguage"`
	TargetLanguage    string   `form:"targetLanguage"`
	Metro             string   `form:"metro"`
	State             string   `form:"state"`
	ZipCode           string   `form:"zipCode"`
	Radius            float64  `form:"radius" validate:"gte=0"`
	AvailableOnly     bool     `form:"availableOnly"`
	CertificationType string   `form:"certificationType"`
	MinExperience     *int     `form:"minExperience" validate:"omitempty,gte=0"`
	MaxExperience     *int     `form:"maxExperience" validate:"omitempty,gte=0"`
	MinRate           *float64 `form:"minRate" validate:"omitempty,gte=0"`
	MaxRate           *float64 `form:"maxRate" validate:"omitempty,gte=0"`
	ProficiencyLevel  string   `form:"proficiencyLevel"`
	ApprovalStatus    string   `form:"approvalStatus" validate:"omitempty,oneof=pending approved rejected"`
	Limit             int      `form:"limit" validate:"gte=0"`
	Offset            int      `form:"offset" validate:"gte=0"`
	SortBy            string   `form:"sortBy" validate:"omitempty,oneof=name rating distance"`
	SortOrder         string   `form:"sortOrder" validate:"omitempty,oneof=asc desc"`

	// ApprovedOnly is forced on for the public surface; never client-set.
	ApprovedOnly bool `form:"-"`

	// Origin coordinates resolved from ZipCode before the query runs.
	// Nil when geocoding failed or was not requested; radius filtering
	// and distance sort are disabled in that case.
	OriginLat *float64 `form:"-"`
	OriginLng *float64 `form:"-"`
}

// SearchResult is one page of matches plus pagination metadata.
type SearchResult struct {
	Interpreters []Interpreter `json:"interpreters"`
	HasMore      bool          `json:"hasMore"`
	Total        int64         `json:"total"`
}

type MetroCount struct {
	Metro string `json:"metro"`
	Count int64  `json:"count"`
}

type Stats struct {
	TotalInterpreters int64        `json:"totalInterpreters"`
	TotalBookings     int64        `json:"totalBookings"`
	TopMetros         []MetroCount `json:"topMetros"`
}

type InterpreterRepository interface {
	Search(ctx context.Context, filter *SearchFilter) ([]Interpreter, int64, error)
	GetByID(ctx context.Context, id int64) (*Interpreter, error)
	GetByEmail(ctx context.Context, email string) (*Interpreter, error)
	Create(ctx context.Context, interp *Interpreter) error
	Update(ctx context.Context, interp *Interpreter) error
	Delete(ctx context.Context, id int64) error
	SetApprovalStatus(ctx context.Context, id int64, status string) error
	UpdateRating(ctx context.Context, id int64, rating string) error
	SetFileURL(ctx context.Context, id int64, column, url string) error
	DistinctLanguages(ctx context.Context) ([]string, error)
	DistinctMetros(ctx context.Context) ([]string, error)
	DistinctStates(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
	TopMetros(ctx context.Context, limit int) ([]MetroCount, error)
}

type InterpreterUsecase interface {
	Search(ctx context.Context, filter *SearchFilter) (*SearchResult, error)
	Get(ctx context.Context, id int64) (*Interpreter, error)
	Create(ctx context.Context, interp *Interpreter) error
	Update(ctx context.Context, interp *Interpreter) error
	Delete(ctx context.Context, id int64) error
	SetApprovalStatus(ctx context.Context, id int64, status string) error
	UpdateOwnProfile(ctx context.Context, interp *Interpreter) (*Interpreter, error)
	GetOwnProfile(ctx context.Context) (*Interpreter, error)
	Languages(ctx context.Context) ([]string, error)
	Metros(ctx context.Context) ([]string, error)
	States(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*Stats, error)
}
