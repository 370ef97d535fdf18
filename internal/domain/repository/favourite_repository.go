package repository

import (
	"context"

	"streamverse/internal/domain/entity"

	"github.com/google/uuid"
)

// FavouriteRepository defines persistence operations for a user's favourites.
//
// Add and Remove are atomic element-level primitives ("push if not exists" /
// "pull by id") rather than whole-collection rewrites, so concurrent requests
// against the same user cannot overwrite each other's writes.
type FavouriteRepository interface {
	// ListByUserID returns the user's favourites in insertion order.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.FavouriteEntry, error)

	// Add persists the entry unless one with the same ItemID already exists
	// for this user. Returns true if a row was inserted, false if the entry
	// was already present (not an error).
	Add(ctx context.Context, userID uuid.UUID, entry *entity.FavouriteEntry) (bool, error)

	// Remove deletes the entry with the given item id. Returns true if a row
	// was removed, false if no such entry existed (not an error).
	Remove(ctx context.Context, userID uuid.UUID, itemID string) (bool, error)
}
