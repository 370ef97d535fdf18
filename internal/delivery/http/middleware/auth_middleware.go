// Package middleware contains the echo middlewares of the HTTP delivery.
package middleware

import (
	deliverycontext "streamverse/internal/delivery/context"
	"streamverse/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware guards routes that require an authenticated account.
type AuthMiddleware struct {
	sessionUC usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessionUC usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessionUC: sessionUC}
}

// Authenticate resolves the Authorization header into a live user and stores
// it on the request context. Token validity alone is not enough; the session
// usecase re-checks that the subject account still exists, so tokens for
// deleted accounts are rejected here.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)

		user, err := m.sessionUC.Authenticate(c.Request().Context(), authHeader)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}
