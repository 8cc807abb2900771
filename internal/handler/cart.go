package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/menu"
	"github.com/iliyamo/geobites/internal/middleware"
	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/repository"
)

// maxCartBody caps the size of a saved cart document.
const maxCartBody = 1 << 20

// CartHandler serves the caller's cart.  Routes sit behind RequireAuth.
type CartHandler struct {
	Carts repository.CartStore
	Menu  menu.Catalog
}

func NewCartHandler(carts repository.CartStore, catalog menu.Catalog) *CartHandler {
	return &CartHandler{Carts: carts, Menu: catalog}
}

func callerEmail(c echo.Context) string {
	id, _ := middleware.IdentityFrom(c)
	if id == nil {
		return ""
	}
	return id.Email()
}

// Get: GET /api/cart
func (h *CartHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	items, err := h.Carts.Get(ctx, callerEmail(c))
	if err != nil {
		return serverError(c, "read cart", "Failed to read cart", err)
	}
	return c.JSON(http.StatusOK, items)
}

// Put: POST /api/cart.  The body replaces the cart; anything other than a
// JSON array saves an empty cart.
func (h *CartHandler) Put(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxCartBody))
	if err != nil {
		body = nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Carts.Put(ctx, callerEmail(c), model.ParseCart(body)); err != nil {
		return serverError(c, "save cart", "Failed to save cart", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

type addItemReq struct {
	ID    string  `json:"id" validate:"required"`
	Name  string  `json:"name"`
	Price float64 `json:"price" validate:"gte=0"`
	Qty   float64 `json:"qty" validate:"gte=0,max=999"`
	Img   string  `json:"img"`
}

// AddItem: POST /api/cart/items.  Items on the menu take their name and
// price from the catalog; anything else must carry both.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemReq
	if err := bindValid(c, &req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid cart item")
	}
	entry := model.CartEntry{ID: req.ID, Name: req.Name, Price: req.Price, Qty: req.Qty, Img: req.Img}
	if it, ok := h.Menu.Find(req.ID); ok {
		entry.Name, entry.Price = it.Name, it.Price
	}
	if entry.Name == "" || entry.Price <= 0 {
		return message(c, http.StatusBadRequest, "Invalid cart item")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	email := callerEmail(c)
	items, err := h.Carts.Get(ctx, email)
	if err != nil {
		return serverError(c, "read cart", "Failed to save cart", err)
	}
	cart := model.Cart(items).Add(entry)
	if err := h.Carts.Put(ctx, email, cart); err != nil {
		return serverError(c, "save cart", "Failed to save cart", err)
	}
	return c.JSON(http.StatusOK, cart)
}

// DecrementItem: DELETE /api/cart/items/:id.  Lowers the quantity by one and
// drops the line when it reaches zero.
func (h *CartHandler) DecrementItem(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	email := callerEmail(c)
	items, err := h.Carts.Get(ctx, email)
	if err != nil {
		return serverError(c, "read cart", "Failed to save cart", err)
	}
	cart := model.Cart(items).Decrement(c.Param("id"))
	if err := h.Carts.Put(ctx, email, cart); err != nil {
		return serverError(c, "save cart", "Failed to save cart", err)
	}
	return c.JSON(http.StatusOK, cart)
}
