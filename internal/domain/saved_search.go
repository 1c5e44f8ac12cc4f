package domain

import (
	"context"
	"time"
)

// SavedSearch persists a named filter set for a visitor. Filters are kept
// as the serialized search filter JSON; the server never interprets them.
type SavedSearch struct {
	ID         int64     `json:"id"`
	OwnerEmail string    `json:"ownerEmail" validate:"required,email"`
	Name       string    `json:"name" validate:"required,max=256"`
	Filters    string    `json:"filters" validate:"required"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Favorite marks an interpreter as bookmarked by a visitor.
type Favorite struct {
	OwnerEmail    string    `json:"ownerEmail" validate:"required,email"`
	InterpreterID int64     `json:"interpreterId" validate:"required"`
	CreatedAt     time.Time `json:"createdAt"`
}

type SavedSearchRepository interface {
	Create(ctx context.Context, search *SavedSearch) error
	FetchByOwner(ctx context.Context, ownerEmail string) ([]SavedSearch, error)
	Delete(ctx context.Context, id int64, ownerEmail string) error
}

type FavoriteRepository interface {
	Put(ctx context.Context, fav *Favorite) error
	Delete(ctx context.Context, ownerEmail string, interpreterID int64) error
	FetchInterpreters(ctx context.Context, ownerEmail string) ([]Interpreter, error)
}

type SavedSearchUsecase interface {
	Create(ctx context.Context, search *SavedSearch) error
	List(ctx context.Context, ownerEmail string) ([]SavedSearch, error)
	Delete(ctx context.Context, id int64, ownerEmail string) error
	AddFavorite(ctx context.Context, fav *Favorite) error
	RemoveFavorite(ctx context.Context, ownerEmail string, interpreterID int64) error
	ListFavorites(ctx context.Context, ownerEmail string) ([]Interpreter, error)
}
