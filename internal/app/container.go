package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/database/migration"
	dbpostgres "portfolio/internal/database/postgres"
	"portfolio/internal/infrastructure/cache"
	"portfolio/internal/pkg/jwt"
	"portfolio/internal/repository"
	"portfolio/internal/seeder"
	"portfolio/internal/store"
	"portfolio/internal/usecase"
	"portfolio/internal/ws"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Store store.Store

	Documents repository.DocumentRepository
	Messages  repository.MessageRepository

	Portfolio usecase.PortfolioUsecase
	Contact   usecase.ContactUsecase
	Inbox     usecase.InboxUsecase
	Auth      usecase.AuthUsecase
	JWT       jwt.Service

	Hub     *ws.Hub
	stopHub context.CancelFunc
}

// OpenStore connects the configured backend. For postgres the documents
// table is migrated first.
func OpenStore(ctx context.Context, cfg config.Config, logger *log.Logger) (store.Store, database.DB, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverSQLite:
		if dir := filepath.Dir(cfg.Store.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		s, err := store.OpenSQLite(cfg.Store.SQLitePath, logger)
		return s, nil, err

	case config.StoreDriverPostgres:
		pool, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := (migration.Runner{}).Run(ctx, pool); err != nil {
			_ = pool.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return store.NewPostgres(pool, logger), pool, nil

	default:
		if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		return store.NewFile(cfg.Store.DataDir, logger), nil, nil
	}
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	base, db, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db, Store: base}

	c.Cache = cache.NewRedis(cfg.Redis, logger)
	if c.Cache.Available() {
		c.Store = store.NewCached(base, c.Cache, c.Cache.TTL(), logger)
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults(logger)}).Run(ctx, c.Store); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	c.Hub = ws.NewHub(logger)
	c.stopHub = stopHub
	go c.Hub.Run(hubCtx)

	c.Documents = repository.NewStoreDocumentRepository(c.Store)
	c.Messages = repository.NewStoreMessageRepository(c.Store)

	c.Portfolio = usecase.NewPortfolioUsecase(c.Documents, logger)
	c.Contact = usecase.NewContactUsecase(c.Messages, ws.NewNotifier(c.Hub), logger)

	if cfg.AdminEnabled() {
		c.JWT = jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		)
		c.Auth = usecase.NewAuthUsecase(cfg.Admin.Username, cfg.Admin.PasswordHash, c.JWT)
		c.Inbox = usecase.NewInboxUsecase(c.Messages)
		logger.Printf("Admin inbox enabled | username=%s", cfg.Admin.Username)
	}

	logger.Printf("Store ready | driver=%s cache=%t", cfg.Store.Driver, c.Cache.Available())
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	return errors.Join(errs...)
}
