package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/handler"
	"github.com/iliyamo/geobites/internal/middleware"
)

// RegisterCustomer registers the cart and checkout under /api.  Any signed-in
// identity may use them; the cart is keyed by the session email.
func RegisterCustomer(e *echo.Echo, cart *handler.CartHandler, orders *handler.OrderHandler) {
	g := e.Group("/api", middleware.RequireAuth)
	g.GET("/cart", cart.Get)
	g.POST("/cart", cart.Put)
	g.POST("/cart/items", cart.AddItem)
	g.DELETE("/cart/items/:id", cart.DecrementItem)
	g.POST("/orders", orders.Place)
}
