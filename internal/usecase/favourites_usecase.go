// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"streamverse/internal/domain/entity"

	"github.com/google/uuid"
)

// AddFavouriteInput carries the catalogue item the user wants to save.
type AddFavouriteInput struct {
	ItemID      string
	Type        string
	Title       string
	Description string
	Image       string
	Status      string
}

// AddFavouriteOutput returns the full favourites list after the add, together
// with whether a new entry was actually created. An add of an item that was
// already saved is a no-op and reports Created as false.
type AddFavouriteOutput struct {
	Items   []*entity.FavouriteEntry
	Created bool
}

// FavouritesUsecase defines the interface for the per-user favourites list.
// Every mutation returns the complete resulting list so clients can replace
// their local copy wholesale.
type FavouritesUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.FavouriteEntry, error)
	Add(ctx context.Context, userID uuid.UUID, input AddFavouriteInput) (*AddFavouriteOutput, error)
	Remove(ctx context.Context, userID uuid.UUID, itemID string) ([]*entity.FavouriteEntry, error)
}
