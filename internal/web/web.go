// Package web draws presentation view models as a server-rendered page.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"time"

	"portfolio/internal/delivery/http/response"
	"portfolio/internal/domain/portfolio"
	"portfolio/internal/presentation"
	"portfolio/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("web").Funcs(template.FuncMap{
		"millis": func(d time.Duration) int64 { return d.Milliseconds() },
	}).ParseFS(templateFS, "templates/*.html")
}

// Source adapts the portfolio use case to presentation.Fetcher, so the
// page reads the same documents the API serves without a network hop.
type Source struct {
	uc usecase.PortfolioUsecase
}

func NewSource(uc usecase.PortfolioUsecase) *Source {
	return &Source{uc: uc}
}

func (s *Source) FetchProfile(ctx context.Context) (portfolio.Profile, error) {
	return s.uc.Profile(ctx)
}

func (s *Source) FetchSkills(ctx context.Context) ([]portfolio.Skill, error) {
	return s.uc.Skills(ctx)
}

func (s *Source) FetchProjects(ctx context.Context) ([]portfolio.Project, error) {
	return s.uc.Projects(ctx)
}

// Sender adapts the contact use case to presentation.ContactSender and
// reports failures with the same texts as the API.
type Sender struct {
	uc usecase.ContactUsecase
}

func NewSender(uc usecase.ContactUsecase) *Sender {
	return &Sender{uc: uc}
}

func (s *Sender) SubmitContact(ctx context.Context, form presentation.ContactForm) error {
	_, err := s.uc.Submit(ctx, usecase.ContactInput{Name: form.Name, Email: form.Email, Message: form.Message})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, usecase.ErrInvalidInput):
		return &presentation.APIError{StatusCode: fiber.StatusBadRequest, Message: response.MessageFieldsRequired}
	default:
		return &presentation.APIError{StatusCode: fiber.StatusInternalServerError, Message: response.MessageSaveFailed}
	}
}

type Handler struct {
	fetcher presentation.Fetcher
	sender  presentation.ContactSender
	loader  *presentation.Loader
	tmpl    *template.Template
	logger  *log.Logger
	now     func() time.Time
}

func NewHandler(fetcher presentation.Fetcher, sender presentation.ContactSender, logger *log.Logger) (*Handler, error) {
	if logger == nil {
		logger = log.Default()
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		fetcher: fetcher,
		sender:  sender,
		loader:  presentation.NewLoader(logger),
		tmpl:    tmpl,
		logger:  logger,
		now:     time.Now,
	}, nil
}

type contactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Index)
	r.Post("/contact", h.Contact)
}

func (h *Handler) load(ctx context.Context, category string) presentation.State {
	s := presentation.Reduce(presentation.Initial(), h.loader.Load(ctx, h.fetcher))
	return presentation.Reduce(s, presentation.CategorySelected{Category: category})
}

func (h *Handler) Index(c fiber.Ctx) error {
	s := h.load(c.Context(), c.Query("category"))
	return h.render(c, fiber.StatusOK, s)
}

func (h *Handler) Contact(c fiber.Ctx) error {
	var req contactForm
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, response.MessageInvalidBody)
		}
	}

	s := h.load(c.Context(), c.Query("category"))
	s = presentation.Submit(c.Context(), s, presentation.ContactForm{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}, h.sender, h.now)

	status := fiber.StatusOK
	if s.Contact.Status == presentation.ContactError {
		status = fiber.StatusUnprocessableEntity
	}
	return h.render(c, status, s)
}

func (h *Handler) render(c fiber.Ctx, status int, s presentation.State) error {
	var buf bytes.Buffer
	data := struct{ Page presentation.Page }{Page: presentation.BuildPage(s, h.logger)}
	if err := h.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		h.logger.Printf("Page render failed | error=%v", err)
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
