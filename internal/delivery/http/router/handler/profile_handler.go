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

// ProfileHandler holds dependencies for the profile endpoints. All routes are
// registered behind the authentication middleware.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, logger: logger}
}

type updateProfileRequest struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AvatarBase64 string `json:"avatarBase64"`
}

// Me returns the authenticated user's own profile.
func (h *ProfileHandler) Me(c echo.Context) error {
	user := deliverycontext.GetUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	return c.JSON(http.StatusOK, response.NewUserView(user))
}

// Update applies the submitted profile changes and returns the full updated profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	user := deliverycontext.GetUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidInput
	}

	updated, err := h.uc.Update(c.Request().Context(), user, usecase.UpdateProfileInput{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		AvatarBase64: req.AvatarBase64,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewUserView(updated))
}

// Delete removes the authenticated account and everything it owns.
func (h *ProfileHandler) Delete(c echo.Context) error {
	user := deliverycontext.GetUser(c)
	if user == nil {
		return domainerrors.ErrUnauthorized
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), user); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
