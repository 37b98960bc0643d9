package handler

import (
	"errors"
	"strings"

	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/delivery/http/response"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ContactHandler struct {
	uc usecase.ContactUsecase
}

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

func NewContactHandler(uc usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/contact", h.Submit)
}

func (h *ContactHandler) Submit(c fiber.Ctx) error {
	var req contactRequest
	// A body that is empty or of a type we do not parse is an empty
	// submission, not a malformed one.
	if len(c.Body()) > 0 && parsedBody(c.Get(fiber.HeaderContentType)) {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidBody, err)
		}
	}

	_, err := h.uc.Submit(c.Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageFieldsRequired, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageSaveFailed, err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageSent)
}

func parsedBody(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, mime := range []string{fiber.MIMEApplicationJSON, fiber.MIMEApplicationForm, fiber.MIMEMultipartForm} {
		if strings.HasPrefix(ct, mime) {
			return true
		}
	}
	return false
}
