// Package router wires handlers and middleware onto an echo instance.
package router

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/geobites/internal/config"
	"github.com/iliyamo/geobites/internal/handler"
	"github.com/iliyamo/geobites/internal/middleware"
	"github.com/iliyamo/geobites/internal/repository"
)

// Handlers bundles everything the routes need.
type Handlers struct {
	Auth    *handler.AuthHandler
	Cart    *handler.CartHandler
	Orders  *handler.OrderHandler
	Contact *handler.ContactHandler
	Owner   *handler.OwnerHandler
	Menu    echo.HandlerFunc
	Health  repository.Pinger
}

// New builds the echo instance: recover, request logging, CORS for the one
// configured origin, the session resolver and every route.
func New(cfg config.Config, h Handlers, rdb *redis.Client, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Session(cfg.JWTSecret))

	limit := middleware.NewTokenBucket(cfg.RateLimit, rdb)
	cache := middleware.NewRedisCache(cfg.Cache, rdb)

	RegisterRoutes(e, h.Health)
	RegisterAuth(e, h.Auth, limit)
	RegisterPublic(e, h.Contact, h.Menu, limit, cache)
	RegisterCustomer(e, h.Cart, h.Orders)
	RegisterOwner(e, h.Owner)
	return e
}

// RegisterRoutes registers the health checks.
func RegisterRoutes(e *echo.Echo, store repository.Pinger) {
	e.GET("/health", handler.Health)
	e.GET("/api/health", handler.StoreHealth(store))
}

// RegisterAuth registers /api/auth.  Signup and login are rate limited;
// me and logout never fail.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/api/auth")
	g.POST("/signup", a.Signup, limit)
	g.POST("/login", a.Login, limit)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me)
}

// RegisterPublic registers anonymous endpoints: the contact form and the
// cached menu.
func RegisterPublic(e *echo.Echo, contact *handler.ContactHandler, menu echo.HandlerFunc, limit, cache echo.MiddlewareFunc) {
	e.POST("/api/contact", contact.Submit, limit)
	e.GET("/api/menu", menu, cache)
}
