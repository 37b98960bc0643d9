package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"portfolio/internal/domain/portfolio"
)

// Cache is the subset of the redis cache the read-through layer needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Cached serves reads of the public resources from a cache and drops the
// cached copy whenever the resource is written. Messages always bypass it.
type Cached struct {
	Store
	cache  Cache
	ttl    time.Duration
	logger *log.Logger
}

func NewCached(inner Store, cache Cache, ttl time.Duration, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{Store: inner, cache: cache, ttl: ttl, logger: logger}
}

func CacheKey(r portfolio.Resource) string {
	return "portfolio:doc:" + string(r)
}

func cacheable(r portfolio.Resource) bool {
	return r != portfolio.ResourceMessages
}

func (s *Cached) Read(ctx context.Context, r portfolio.Resource) (json.RawMessage, error) {
	if !cacheable(r) || s.cache == nil {
		return s.Store.Read(ctx, r)
	}

	var doc json.RawMessage
	hit, err := s.cache.GetJSON(ctx, CacheKey(r), &doc)
	if err != nil {
		s.logger.Printf("[Cache] read failed, falling back to store | resource=%s error=%v", r, err)
	}
	if hit {
		return doc, nil
	}

	doc, err = s.Store.Read(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, CacheKey(r), doc, s.ttl); err != nil {
		s.logger.Printf("[Cache] fill failed | resource=%s error=%v", r, err)
	}
	return doc, nil
}

func (s *Cached) Write(ctx context.Context, r portfolio.Resource, v any) error {
	err := s.Store.Write(ctx, r, v)
	s.invalidate(ctx, r)
	return err
}

func (s *Cached) Update(ctx context.Context, r portfolio.Resource, fn UpdateFunc) error {
	err := s.Store.Update(ctx, r, fn)
	s.invalidate(ctx, r)
	return err
}

func (s *Cached) Seed(ctx context.Context, r portfolio.Resource, v any) (bool, error) {
	created, err := s.Store.Seed(ctx, r, v)
	if created {
		s.invalidate(ctx, r)
	}
	return created, err
}

func (s *Cached) invalidate(ctx context.Context, r portfolio.Resource) {
	if !cacheable(r) || s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, CacheKey(r)); err != nil {
		s.logger.Printf("[Cache] invalidate failed | resource=%s error=%v", r, err)
	}
}
