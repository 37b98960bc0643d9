package app

import (
	"fmt"
	"log"
	"os"
	"strings"

	"portfolio/internal/config"
	"portfolio/internal/delivery/http/middleware"
	"portfolio/internal/delivery/http/routes"
	"portfolio/internal/web"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/static"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New assembles the HTTP application on top of an existing container.
func New(c *Container) (*App, error) {
	cfg := c.Config
	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	registerGlobalMiddleware(f, c.Logger)

	routes.NewRegistry(routes.Deps{
		Logger:      c.Logger,
		StoreDriver: cfg.Store.Driver,
		Store:       c.Store,
		Portfolio:   c.Portfolio,
		Contact:     c.Contact,
		Auth:        c.Auth,
		Inbox:       c.Inbox,
		JWT:         c.JWT,
		Hub:         c.Hub,
	}).Register(f)

	page, err := web.NewHandler(web.NewSource(c.Portfolio), web.NewSender(c.Contact), c.Logger)
	if err != nil {
		return nil, fmt.Errorf("web templates: %w", err)
	}
	page.RegisterRoutes(f)

	registerStatic(f, cfg.App.PublicDir, c.Logger)

	return &App{Fiber: f, Container: c}, nil
}

// Bootstrap builds the container and the HTTP application. The returned
// cleanup releases everything the container opened.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	a, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return a, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger, "/health").Middleware())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(compress.New())
}

func registerStatic(app *fiber.App, dir string, logger *log.Logger) {
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Printf("Static assets disabled | dir=%s", dir)
		return
	}
	app.Get("/*", static.New(dir))
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
