package domain

import (
	"context"
	"time"
)

// Review moderation statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type Review struct {
	ID            int64     `json:"id"`
	InterpreterID int64     `json:"interpreterId" validate:"required"`
	ReviewerName  string    `json:"reviewerName" validate:"required,max=256"`
	Rating        int       `json:"rating" validate:"gte=1,lte=5"`
	Comment       string    `json:"comment" validate:"max=2000"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id int64) (*Review, error)
	FetchByInterpreter(ctx context.Context, interpreterID int64, status string) ([]Review, error)
	FetchByStatus(ctx context.Context, status string, limit, offset int) ([]Review, int64, error)
	SetStatus(ctx context.Context, id int64, status string) error
	ApprovedRatings(ctx context.Context, interpreterID int64) ([]int, error)
}

type ReviewUsecase interface {
	Submit(ctx context.Context, review *Review) error
	ListApproved(ctx context.Context, interpreterID int64) ([]Review, error)
	ListForModeration(ctx context.Context, status string, page, pageSize int) ([]Review, int64, error)
	Moderate(ctx context.Context, id int64, status string) (*Review, error)
}
