package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/repository"
	"portfolio/internal/store"
)

// PortfolioUsecase serves the public documents. Absent documents resolve to
// their defaults; any other failure is ErrInternal.
type PortfolioUsecase interface {
	Document(ctx context.Context, r portfolio.Resource) (json.RawMessage, error)
	Profile(ctx context.Context) (portfolio.Profile, error)
	Skills(ctx context.Context) ([]portfolio.Skill, error)
	Projects(ctx context.Context) ([]portfolio.Project, error)
}

type Portfolio struct {
	docs   repository.DocumentRepository
	logger *log.Logger
}

func NewPortfolioUsecase(docs repository.DocumentRepository, logger *log.Logger) *Portfolio {
	if logger == nil {
		logger = log.Default()
	}
	return &Portfolio{docs: docs, logger: logger}
}

func (u *Portfolio) Document(ctx context.Context, r portfolio.Resource) (json.RawMessage, error) {
	if r == portfolio.ResourceMessages || !r.Valid() {
		return nil, fmt.Errorf("%w: resource %q is not public", ErrInvalidInput, r)
	}

	raw, err := u.docs.Get(ctx, r)
	if errors.Is(err, store.ErrNotFound) {
		b, mErr := json.Marshal(portfolio.DefaultDocument(r))
		if mErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, mErr)
		}
		return b, nil
	}
	if err != nil {
		u.logger.Printf("Portfolio read failed | resource=%s error=%v", r, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return raw, nil
}

func (u *Portfolio) Profile(ctx context.Context) (portfolio.Profile, error) {
	var p portfolio.Profile
	err := u.decode(ctx, portfolio.ResourceProfile, &p)
	return p, err
}

func (u *Portfolio) Skills(ctx context.Context) ([]portfolio.Skill, error) {
	out := []portfolio.Skill{}
	err := u.decode(ctx, portfolio.ResourceSkills, &out)
	return out, err
}

func (u *Portfolio) Projects(ctx context.Context) ([]portfolio.Project, error) {
	out := []portfolio.Project{}
	err := u.decode(ctx, portfolio.ResourceProjects, &out)
	return out, err
}

func (u *Portfolio) decode(ctx context.Context, r portfolio.Resource, out any) error {
	raw, err := u.Document(ctx, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		u.logger.Printf("Portfolio decode failed | resource=%s error=%v", r, err)
		return fmt.Errorf("%w: decode %s: %v", ErrInternal, r, err)
	}
	return nil
}
