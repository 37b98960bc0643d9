package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"portfolio/internal/app"
	"portfolio/internal/config"
	"portfolio/internal/seeder"
)

func main() {
	seed := flag.Bool("seed", true, "write default documents that are missing")
	audit := flag.Bool("audit", true, "validate stored documents against their schemas")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Opening a postgres store applies pending migrations.
	s, _, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Printf("close error: %v", err)
		}
	}()

	if *seed {
		if err := (seeder.Runner{Seeders: seeder.Defaults(logger)}).Run(ctx, s); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		logger.Printf("Seed complete | driver=%s", cfg.Store.Driver)
	}

	if !*audit {
		return
	}

	findings, err := seeder.Audit(ctx, s)
	if err != nil {
		log.Fatalf("audit failed: %v", err)
	}
	for _, f := range findings {
		logger.Printf("Audit finding | resource=%s error=%v", f.Resource, f.Err)
	}
	if len(findings) > 0 {
		// Deferred calls do not run after os.Exit.
		_ = s.Close()
		os.Exit(1)
	}
	logger.Printf("Audit clean | documents=ok")
}
