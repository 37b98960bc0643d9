package handler

import (
	"errors"
	"strconv"

	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/delivery/http/response"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// InboxHandler lets the administrator page through contact messages and
// flag them read or unread.
type InboxHandler struct {
	uc usecase.InboxUsecase
}

type markReadRequest struct {
	Read *bool `json:"read"`
}

func NewInboxHandler(uc usecase.InboxUsecase) *InboxHandler {
	return &InboxHandler{uc: uc}
}

func (h *InboxHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Patch("/:id", h.MarkRead)
}

func (h *InboxHandler) List(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", err)
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", err)
	}

	page, err := h.uc.List(c.Context(), usecase.InboxFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return mapInboxError(err)
	}
	return response.JSON(c, fiber.StatusOK, page)
}

func (h *InboxHandler) MarkRead(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid message id", err)
	}

	var req markReadRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidBody, err)
	}
	if req.Read == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Field read is required", nil)
	}

	msg, err := h.uc.MarkRead(c.Context(), id, *req.Read)
	if err != nil {
		return mapInboxError(err)
	}
	return response.JSON(c, fiber.StatusOK, msg)
}

func queryInt(c fiber.Ctx, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func mapInboxError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, err)
	case errors.Is(err, usecase.ErrMessageNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Message not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
