// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"streamverse/internal/domain/entity"
)

// UpdateProfileInput carries the profile fields a user may change. Empty
// fields are left untouched; AvatarBase64 holds a base64 data URI when the
// user picked a new avatar image.
type UpdateProfileInput struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	AvatarBase64 string
}

// ProfileUsecase defines the interface for account profile operations. All
// methods operate on the already-authenticated user.
type ProfileUsecase interface {
	Update(ctx context.Context, user *entity.User, input UpdateProfileInput) (*entity.User, error)
	DeleteAccount(ctx context.Context, user *entity.User) error
}
