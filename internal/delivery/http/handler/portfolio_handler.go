package handler

import (
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/delivery/http/response"
	"portfolio/internal/domain/portfolio"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// PortfolioHandler serves the public profile, skills and projects
// documents exactly as stored.
type PortfolioHandler struct {
	uc usecase.PortfolioUsecase
}

func NewPortfolioHandler(uc usecase.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.document(portfolio.ResourceProfile))
	r.Get("/skills", h.document(portfolio.ResourceSkills))
	r.Get("/projects", h.document(portfolio.ResourceProjects))
}

func (h *PortfolioHandler) document(res portfolio.Resource) fiber.Handler {
	return func(c fiber.Ctx) error {
		doc, err := h.uc.Document(c.Context(), res)
		if err != nil {
			return middleware.NewAppError(fiber.StatusInternalServerError, response.FetchFailed(string(res)), err)
		}
		return response.Raw(c, fiber.StatusOK, doc)
	}
}
