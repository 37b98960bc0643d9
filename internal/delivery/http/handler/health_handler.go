package handler

import (
	"context"
	"time"

	"portfolio/internal/delivery/http/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	driver string
}

func NewHealthHandler(store Pinger, driver string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver}
}

type healthBody struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			return response.JSON(c, fiber.StatusServiceUnavailable, healthBody{Status: "unavailable", Store: h.driver})
		}
	}
	return response.JSON(c, fiber.StatusOK, healthBody{Status: "ok", Store: h.driver})
}
