package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "streamverse/internal/delivery/context"
	"streamverse/internal/delivery/http/response"
	domainerrors "streamverse/internal/domain/errors"
	"streamverse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FavouritesHandler holds dependencies for the favourites endpoints. All
// routes are registered behind the authentication middleware.
type FavouritesHandler struct {
	uc     usecase.FavouritesUsecase
	logger *slog.Logger
}

// NewFavouritesHandler is the constructor for FavouritesHandler, injected by Fx.
func NewFavouritesHandler(uc usecase.FavouritesUsecase, logger *slog.Logger) *FavouritesHandler {
	return &FavouritesHandler{uc: uc, logger: logger}
}

// addFavouriteRequest carries the candidate item. The catalogue item id
// travels as "id" on the wire; it is only stored as itemId internally.
type addFavouriteRequest struct {
	ItemID      string `json:"id" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Image       string `json:"image" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

// List returns the authenticated user's favourites.
func (h *FavouritesHandler) List(c echo.Context) error {
	user := deliverycontext.GetUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	items, err := h.uc.List(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewFavouritesBody(items))
}

// Add saves a catalogue item into the list. A freshly created entry answers
// 201; re-adding an item that was already saved answers 200. Both return the
// complete resulting list.
func (h *FavouritesHandler) Add(c echo.Context) error {
	user := deliverycontext.GetUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	var req addFavouriteRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidFavourite
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrInvalidFavourite
	}

	output, err := h.uc.Add(c.Request().Context(), user.ID, usecase.AddFavouriteInput{
		ItemID:      req.ItemID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}

	return c.JSON(status, response.NewFavouritesBody(output.Items))
}

// Remove drops one item from the list and returns what remains. Removing an
// item that is not in the list is a no-op.
func (h *FavouritesHandler) Remove(c echo.Context) error {
	user := deliverycontext.GetUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	items, err := h.uc.Remove(c.Request().Context(), user.ID, c.Param("itemId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewFavouritesBody(items))
}
