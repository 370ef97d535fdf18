// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"streamverse/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
// Callers are expected to lowercase email/username values before lookups and
// writes; the repository never relies on storage-level collation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIdentifier retrieves the user whose email OR username equals the
	// given identifier, in a single query covering both fields.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	// FindByEmailOrUsername retrieves any user matching either value, in a
	// single query covering both fields. Used for registration conflict checks.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)

	// ExistsOtherWithEmail reports whether a user other than excludeID already
	// owns the given email.
	ExistsOtherWithEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// ExistsOtherWithUsername reports whether a user other than excludeID
	// already owns the given username.
	ExistsOtherWithUsername(ctx context.Context, username string, excludeID uuid.UUID) (bool, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user record. Favourites are removed with it.
	Delete(ctx context.Context, id uuid.UUID) error
}
