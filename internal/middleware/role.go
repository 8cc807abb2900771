package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/geobites/internal/model"
)

// RequireRole admits only callers whose identity has one of the given
// roles.  It must run after Session.  Failures are a bare 401 so the
// response never says whether a session existed.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    allowed := make(map[model.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id, ok := IdentityFrom(c)
            if !ok || !allowed[id.Role()] {
                return unauthorized(c)
            }
            return next(c)
        }
    }
}
