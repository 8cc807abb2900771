package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/handler"
	"github.com/iliyamo/geobites/internal/middleware"
	"github.com/iliyamo/geobites/internal/model"
)

// RegisterOwner registers the owner console.  Every route requires the
// owner role.
func RegisterOwner(e *echo.Echo, h *handler.OwnerHandler) {
	owner := middleware.RequireRole(model.RoleOwner)
	e.GET("/api/orders", h.ListOrders, owner)
	e.GET("/api/contact", h.ListContacts, owner)
	e.DELETE("/api/contact/:id", h.DeleteContact, owner)
}
