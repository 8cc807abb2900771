package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/geobites/internal/service"
)

// ContactHandler accepts public contact-form submissions.
type ContactHandler struct {
	Contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{Contacts: contacts}
}

type contactReq struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// Submit: POST /api/contact
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "Empty message")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	_, err := h.Contacts.Submit(ctx, req.Name, req.Subject, req.Email, req.Description)
	if errors.Is(err, service.ErrEmptyMessage) {
		return message(c, http.StatusBadRequest, "Empty message")
	}
	if err != nil {
		return serverError(c, "save contact", "Failed to save message", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
