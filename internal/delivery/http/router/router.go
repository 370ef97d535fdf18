// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"streamverse/internal/delivery/http/middleware"
	"streamverse/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	FavouritesHandler *handler.FavouritesHandler
	AuthMiddleware    *middleware.AuthMiddleware
	RequestMiddleware *middleware.RequestContextMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	favouritesHandler *handler.FavouritesHandler
	authMiddleware    *middleware.AuthMiddleware
	requestMiddleware *middleware.RequestContextMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		profileHandler:    params.ProfileHandler,
		favouritesHandler: params.FavouritesHandler,
		authMiddleware:    params.AuthMiddleware,
		requestMiddleware: params.RequestMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestMiddleware.Handle)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes, no token required
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Profile routes that require authentication
	profileGroup := api.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("/me", r.profileHandler.Me)
		profileGroup.PUT("", r.profileHandler.Update)
		profileGroup.DELETE("", r.profileHandler.Delete)
	}

	// Favourites routes that require authentication
	favouritesGroup := api.Group("/favourites")
	favouritesGroup.Use(r.authMiddleware.Authenticate)
	{
		favouritesGroup.GET("", r.favouritesHandler.List)
		favouritesGroup.POST("", r.favouritesHandler.Add)
		favouritesGroup.DELETE("/:itemId", r.favouritesHandler.Remove)
	}
}
