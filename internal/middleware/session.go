package middleware

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/geobites/internal/model"
    "github.com/iliyamo/geobites/internal/utils"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "token"

const identityKey = "identity"

// Session resolves the session cookie into a model.Identity stored on the
// echo context.  A missing, expired or forged token leaves the request
// anonymous; it never rejects on its own.
func Session(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ck, err := c.Cookie(SessionCookieName)
            if err == nil && ck.Value != "" {
                if id, err := utils.ParseSessionToken(secret, ck.Value); err == nil {
                    c.Set(identityKey, id)
                }
            }
            return next(c)
        }
    }
}

// IdentityFrom returns the caller resolved by Session, if any.
func IdentityFrom(c echo.Context) (model.Identity, bool) {
    id, ok := c.Get(identityKey).(model.Identity)
    return id, ok && id != nil
}

// RequireAuth rejects anonymous callers with 401.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
    return func(c echo.Context) error {
        if _, ok := IdentityFrom(c); !ok {
            return unauthorized(c)
        }
        return next(c)
    }
}

func unauthorized(c echo.Context) error {
    return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
}

// CookieOptions controls the cross-site attributes of the session cookie.
type CookieOptions struct {
    Production bool
    TTL        time.Duration
}

// SetSessionCookie attaches tok to the response.  Production cookies are
// SameSite=None and Secure so the SPA can live on another origin.
func SetSessionCookie(c echo.Context, tok utils.SessionToken, opts CookieOptions) {
    ck := baseCookie(opts)
    ck.Value = tok.Token
    ck.MaxAge = int(opts.TTL / time.Second)
    ck.Expires = tok.Exp
    c.SetCookie(ck)
}

// ClearSessionCookie expires the session cookie using the same attributes
// it was set with.
func ClearSessionCookie(c echo.Context, opts CookieOptions) {
    ck := baseCookie(opts)
    ck.MaxAge = -1
    ck.Expires = time.Unix(0, 0)
    c.SetCookie(ck)
}

func baseCookie(opts CookieOptions) *http.Cookie {
    ck := &http.Cookie{
        Name:     SessionCookieName,
        Path:     "/",
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
    if opts.Production {
        ck.SameSite = http.SameSiteNoneMode
        ck.Secure = true
    }
    return ck
}
