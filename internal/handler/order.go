package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/middleware"
	"github.com/iliyamo/geobites/internal/service"
)

// OrderHandler places orders for the signed-in caller.
type OrderHandler struct {
	Orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// placeOrderReq carries checkout details only.  Any items or prices in the
// body are ignored.
type placeOrderReq struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Place: POST /api/orders
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Missing order fields")
	}
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return message(c, http.StatusUnauthorized, "Unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	orderID, err := h.Orders.Place(ctx, id, req.Name, req.Address)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return message(c, http.StatusBadRequest, "Missing order fields")
	case errors.Is(err, service.ErrEmptyCart):
		return message(c, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, service.ErrInvalidItems):
		return message(c, http.StatusBadRequest, "Invalid cart items")
	case err != nil:
		return serverError(c, "place order", "Failed to save order", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "orderId": orderID})
}
