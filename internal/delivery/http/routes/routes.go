package routes

import (
	"log"

	"portfolio/internal/delivery/http/handler"
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/pkg/jwt"
	"portfolio/internal/usecase"
	"portfolio/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Logger      *log.Logger
	StoreDriver string
	Store       handler.Pinger

	Portfolio usecase.PortfolioUsecase
	Contact   usecase.ContactUsecase

	// The admin routes are registered only when Auth, Inbox and JWT are
	// all set.
	Auth  usecase.AuthUsecase
	Inbox usecase.InboxUsecase
	JWT   jwt.Service
	Hub   *ws.Hub
}

type Registry struct {
	deps      Deps
	health    *handler.HealthHandler
	portfolio *handler.PortfolioHandler
	contact   *handler.ContactHandler
}

func NewRegistry(d Deps) *Registry {
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	return &Registry{
		deps:      d,
		health:    handler.NewHealthHandler(d.Store, d.StoreDriver),
		portfolio: handler.NewPortfolioHandler(d.Portfolio),
		contact:   handler.NewContactHandler(d.Contact),
	}
}

func (r *Registry) AdminEnabled() bool {
	return r.deps.Auth != nil && r.deps.Inbox != nil && r.deps.JWT != nil
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	r.portfolio.RegisterRoutes(api)
	r.contact.RegisterRoutes(api)

	if r.AdminEnabled() {
		r.registerAdmin(api.Group("/admin"))
	}
}

func (r *Registry) registerAdmin(admin fiber.Router) {
	authMw := middleware.NewAuthMiddleware(r.deps.JWT)

	handler.NewAuthHandler(r.deps.Auth).RegisterRoutes(admin.Group("/auth"))

	handler.NewInboxHandler(r.deps.Inbox).RegisterRoutes(admin.Group("/messages", authMw.Middleware()))

	if r.deps.Hub != nil {
		admin.Get("/ws", authMw.WebSocket(), ws.NewHandler(r.deps.Hub, r.deps.Logger).HandleMessagesWS)
	}
}
