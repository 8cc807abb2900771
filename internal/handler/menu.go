package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/menu"
)

// Menu returns the storefront catalog.
func Menu(catalog menu.Catalog) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, catalog)
	}
}
