package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/repository"
)

// Health reports that the process is up.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// StoreHealth pings the active store and answers {ok:false} with 500 when it
// is unreachable.
func StoreHealth(p repository.Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			slog.Error("store health failed", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false})
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
}
