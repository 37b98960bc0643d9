package seeder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/schema"
	"portfolio/internal/store"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, s store.Store) error
}

// DocumentSeeder writes a resource's default content when it is absent.
type DocumentSeeder struct {
	Resource portfolio.Resource
	Content  any
	Logger   *log.Logger
}

func (d DocumentSeeder) Name() string { return string(d.Resource) }

func (d DocumentSeeder) Run(ctx context.Context, s store.Store) error {
	created, err := s.Seed(ctx, d.Resource, d.Content)
	if err != nil {
		return err
	}
	if created && d.Logger != nil {
		d.Logger.Printf("Seeded default document | resource=%s", d.Resource)
	}
	return nil
}

func Defaults(logger *log.Logger) []Seeder {
	out := make([]Seeder, 0, len(portfolio.Resources()))
	for _, r := range portfolio.Resources() {
		out = append(out, DocumentSeeder{Resource: r, Content: portfolio.DefaultDocument(r), Logger: logger})
	}
	return out
}

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, s store.Store) error {
	if s == nil {
		return fmt.Errorf("nil store")
	}
	for _, sd := range r.Seeders {
		if sd == nil {
			continue
		}
		if err := sd.Run(ctx, s); err != nil {
			return fmt.Errorf("seed %s: %w", sd.Name(), err)
		}
	}
	return nil
}

// Finding describes a stored document that does not match its schema.
type Finding struct {
	Resource portfolio.Resource
	Err      error
}

// Audit checks every stored document against its schema. Missing documents
// are skipped, documents that do not parse are reported; nothing is modified.
func Audit(ctx context.Context, s store.Store) ([]Finding, error) {
	var out []Finding
	for _, r := range portfolio.Resources() {
		raw, err := s.Read(ctx, r)
		if errors.Is(err, store.ErrMalformed) {
			out = append(out, Finding{Resource: r, Err: err})
			continue
		}
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("audit %s: %w", r, err)
		}
		if err := schema.Document(r, json.RawMessage(raw)); err != nil {
			out = append(out, Finding{Resource: r, Err: err})
		}
	}
	return out, nil
}
