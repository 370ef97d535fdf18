package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and verifying session tokens.
// Tokens are stateless: the only claim is the user id as subject, plus an
// expiry. There is no server-side revocation list, so callers must still
// resolve the subject to a live user on every authenticated request.
type TokenService interface {
	// Generate signs a new session token for the given user.
	Generate(userID uuid.UUID) (string, error)

	// Validate verifies signature and expiry and returns the token's subject.
	Validate(tokenString string) (uuid.UUID, error)

	// TokenDuration returns the configured expiry window.
	TokenDuration() time.Duration
}
