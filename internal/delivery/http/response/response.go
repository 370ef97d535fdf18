// Package response holds the wire shapes returned by the HTTP API. Payloads
// are flat JSON objects and errors are always {"message": "..."}.
package response

import (
	"net/http"
	"time"

	"streamverse/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the single error shape used across the API.
type ErrorBody struct {
	Message string `json:"message"`
}

// UserView is the sanitized public projection of an account. The password
// hash never leaves the server.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FavouriteView is the wire shape of one favourites entry. The catalogue
// item id is exposed as "id".
type FavouriteView struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Status      string    `json:"status,omitempty"`
	AddedAt     time.Time `json:"addedAt"`
}

// FavouritesBody wraps a favourites list for transport.
type FavouritesBody struct {
	Items []FavouriteView `json:"items"`
}

// AuthBody is the payload returned by register and login.
type AuthBody struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// NewUserView maps a domain user to its public projection.
func NewUserView(user *entity.User) UserView {
	return UserView{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewFavouritesBody maps domain entries to the wire list. The slice is never
// nil so an empty list serialises as {"items": []}.
func NewFavouritesBody(entries []*entity.FavouriteEntry) FavouritesBody {
	items := make([]FavouriteView, 0, len(entries))
	for _, entry := range entries {
		items = append(items, FavouriteView{
			ID:          entry.ItemID,
			Type:        entry.Type.String(),
			Title:       entry.Title,
			Description: entry.Description,
			Image:       entry.Image,
			Status:      entry.Status,
			AddedAt:     entry.AddedAt,
		})
	}

	return FavouritesBody{Items: items}
}

// Error writes the flat error body with the given status.
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorBody{Message: message})
}
