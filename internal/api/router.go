package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/accounthub/accounts-api/internal/api/handler"
	"github.com/accounthub/accounts-api/internal/api/middleware"
	"github.com/accounthub/accounts-api/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(users ports.UserService, verifier middleware.TokenVerifier, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userHandler := handler.NewUserHandler(users)
	authHandler := handler.NewAuthHandler(users)
	auth := middleware.Auth(verifier)

	// --- Public routes ---
	e.POST("/users", userHandler.Create)
	e.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	// Auth always precedes the authorization gates: an unauthenticated
	// caller has no identity to authorize against.
	e.GET("/users", userHandler.List, auth, middleware.AdminOnly())
	e.GET("/users/profile", userHandler.Profile, auth)
	e.PATCH("/users/:id", userHandler.Update, auth, middleware.OwnerOrAdmin())
	e.DELETE("/users/:id", userHandler.Delete, auth, middleware.OwnerOrAdmin())

	// --- Operational endpoints ---
	e.GET("/health", handler.NewHealthHandler().Liveness) // liveness – is the process alive?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
