package presentation

import (
	"context"
	"log"

	"portfolio/internal/domain/portfolio"

	"golang.org/x/sync/errgroup"
)

// Fetcher supplies the three public documents.
type Fetcher interface {
	FetchProfile(ctx context.Context) (portfolio.Profile, error)
	FetchSkills(ctx context.Context) ([]portfolio.Skill, error)
	FetchProjects(ctx context.Context) ([]portfolio.Project, error)
}

type Loader struct {
	logger *log.Logger
}

func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{logger: logger}
}

// Load fetches all three documents concurrently. Any failure yields
// DataFailed, so the page never mixes live and fallback sections.
func (l *Loader) Load(ctx context.Context, f Fetcher) Action {
	var (
		profile  portfolio.Profile
		skills   []portfolio.Skill
		projects []portfolio.Project
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = f.FetchProfile(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		skills, err = f.FetchSkills(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = f.FetchProjects(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		l.logger.Printf("Portfolio load failed, using fallback | error=%v", err)
		return DataFailed{Err: err}
	}
	return DataLoaded{Profile: profile, Skills: skills, Projects: projects}
}
