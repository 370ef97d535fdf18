// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"streamverse/internal/domain/entity"
)

// SessionUsecase defines the interface for resolving a bearer token into a
// live account.
type SessionUsecase interface {
	// Authenticate parses the Authorization header, verifies the token
	// signature and expiry, and confirms the subject account still exists.
	Authenticate(ctx context.Context, authorizationHeader string) (*entity.User, error)
}
