package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/middleware"
	"github.com/iliyamo/geobites/internal/model"
	"github.com/iliyamo/geobites/internal/repository"
	"github.com/iliyamo/geobites/internal/service"
	"github.com/iliyamo/geobites/internal/utils"
)

// AuthHandler serves signup, login, logout and session introspection.
type AuthHandler struct {
	Auth       *service.AuthService
	Secret     string
	SessionTTL time.Duration
	Production bool
}

func NewAuthHandler(auth *service.AuthService, secret string, ttl time.Duration, production bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Secret: secret, SessionTTL: ttl, Production: production}
}

type signupReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginReq uses pointers so a missing field is distinguishable from an
// empty one.
type loginReq struct {
	Email    *string `json:"email" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

type userPart struct {
	Role  model.Role `json:"role"`
	Email string     `json:"email"`
	Name  string     `json:"name,omitempty"`
}

type authResp struct {
	OK   bool     `json:"ok"`
	User userPart `json:"user"`
}

func (h *AuthHandler) cookieOpts() middleware.CookieOptions {
	return middleware.CookieOptions{Production: h.Production, TTL: h.SessionTTL}
}

// startSession issues the cookie and writes the {ok,user} body.
func (h *AuthHandler) startSession(c echo.Context, id model.Identity, op, failMsg string) error {
	tok, err := utils.NewSessionToken(h.Secret, id, h.SessionTTL)
	if err != nil {
		return serverError(c, op, failMsg, err)
	}
	middleware.SetSessionCookie(c, tok, h.cookieOpts())
	return c.JSON(http.StatusOK, authResp{
		OK:   true,
		User: userPart{Role: id.Role(), Email: id.Email(), Name: id.Name()},
	})
}

// Signup: POST /api/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := bindValid(c, &req); err != nil {
		return message(c, http.StatusBadRequest, "Missing fields")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	customer, err := h.Auth.Signup(ctx, req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrMissingSignup):
		return message(c, http.StatusBadRequest, "Missing fields")
	case errors.Is(err, repository.ErrEmailExists):
		return message(c, http.StatusBadRequest, "User exists")
	case err != nil:
		return serverError(c, "signup", "Failed to create user", err)
	}
	return h.startSession(c, customer, "signup", "Failed to create user")
}

// Login: POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindValid(c, &req); err != nil {
		return message(c, http.StatusBadRequest, "Invalid payload")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	id, err := h.Auth.Login(ctx, *req.Email, *req.Password)
	if errors.Is(err, service.ErrInvalidLogin) {
		return message(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return serverError(c, "login", "Server error", err)
	}
	return h.startSession(c, id, "login", "Server error")
}

// Logout: POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c, h.cookieOpts())
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

type meResp struct {
	Authenticated bool       `json:"authenticated"`
	Role          model.Role `json:"role,omitempty"`
	Email         string     `json:"email,omitempty"`
	Name          string     `json:"name,omitempty"`
}

// Me: GET /api/auth/me.  Never fails; an invalid session reads as
// unauthenticated.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusOK, meResp{Authenticated: false})
	}
	return c.JSON(http.StatusOK, meResp{
		Authenticated: true,
		Role:          id.Role(),
		Email:         id.Email(),
		Name:          id.Name(),
	})
}
