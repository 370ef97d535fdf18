// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. Email and username are globally
// unique and always stored lowercased; uniqueness is re-checked against all
// other users before any mutation is committed.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // Unique login identifier, lowercased at write time.
	Username     string    // Unique display handle, lowercased at write time.
	PasswordHash string    // The bcrypt hash of the user's password. Never serialized.
	FirstName    string
	LastName     string
	AvatarURL    string    // URL returned by the blob-storage collaborator, empty if no avatar.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}

// FavouriteEntry is a user's saved reference to a catalogue item, with a
// denormalized snapshot of its display fields taken at save time. Entries are
// owned exclusively by their User and have no independent lifecycle: they are
// created on add, destroyed on remove or account deletion, never updated.
type FavouriteEntry struct {
	ItemID      string        // Catalogue item id; unique within one user's favourites.
	Type        CatalogueType // One of movie, music, podcast.
	Title       string
	Description string
	Image       string
	Status      string
	AddedAt     time.Time // When the entry was favourited; list order follows insertion.
}
