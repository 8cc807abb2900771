package middleware

import "github.com/labstack/echo/v4"

// currentUserID names the caller for rate-limit keys: the session email, or
// "anon" for anonymous requests.
func currentUserID(c echo.Context) string {
    if id, ok := IdentityFrom(c); ok && id.Email() != "" {
        return string(id.Role()) + "/" + id.Email()
    }
    return "anon"
}
