package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/repository"
	"github.com/iliyamo/geobites/internal/service"
)

// OwnerHandler serves the owner console.  Every route sits behind
// RequireRole(owner).
type OwnerHandler struct {
	Orders   *service.OrderService
	Contacts *service.ContactService
}

// NewOwnerHandler panics on nil services; wiring mistakes should fail at
// startup.
func NewOwnerHandler(orders *service.OrderService, contacts *service.ContactService) *OwnerHandler {
	if orders == nil || contacts == nil {
		panic("nil service passed to NewOwnerHandler")
	}
	return &OwnerHandler{Orders: orders, Contacts: contacts}
}

// ListOrders: GET /api/orders
func (h *OwnerHandler) ListOrders(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	orders, err := h.Orders.ListAll(ctx)
	if err != nil {
		return serverError(c, "list orders", "Failed to read orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ListContacts: GET /api/contact
func (h *OwnerHandler) ListContacts(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	msgs, err := h.Contacts.ListAll(ctx)
	if err != nil {
		return serverError(c, "list contacts", "Failed to read messages", err)
	}
	return c.JSON(http.StatusOK, msgs)
}

// DeleteContact: DELETE /api/contact/:id
func (h *OwnerHandler) DeleteContact(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := reqCtx(c)
	defer cancel()
	err := h.Contacts.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return message(c, http.StatusNotFound, "Message not found")
	}
	if err != nil {
		return serverError(c, "delete contact", "Failed to delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
