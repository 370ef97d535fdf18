package service

import (
	"context"

	"github.com/google/uuid"
)

// AvatarStore is the external blob-storage collaborator for profile images.
// The core never does image processing: it forwards the client-supplied
// data-URI payload and stores only the URL the collaborator returns.
type AvatarStore interface {
	// Upload stores the decoded data-URI payload under the user's avatar key,
	// overwriting any previous avatar, and returns the public URL.
	Upload(ctx context.Context, userID uuid.UUID, dataURI string) (string, error)

	// Delete removes the user's avatar. Deleting an absent avatar is not an error.
	Delete(ctx context.Context, userID uuid.UUID) error
}
