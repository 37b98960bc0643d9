// Package store persists the portfolio documents. Every resource is a single
// JSON document; backends differ only in where the bytes live.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio/internal/domain/portfolio"
)

// ErrNotFound is returned by Read when a document is absent or unreadable as
// JSON.
var ErrNotFound = errors.New("document not found")

// ErrMalformed is returned by Read when a document exists but is not valid
// JSON. It matches ErrNotFound so readers fall back to defaults.
var ErrMalformed = fmt.Errorf("%w: malformed JSON", ErrNotFound)

// UpdateFunc receives the current document (nil when absent or malformed)
// and returns the value to persist in its place.
type UpdateFunc func(current json.RawMessage) (any, error)

type Store interface {
	Read(ctx context.Context, r portfolio.Resource) (json.RawMessage, error)
	Write(ctx context.Context, r portfolio.Resource, v any) error
	// Update runs fn and persists its result while holding the store's
	// writer lock, so concurrent updates of one resource never interleave.
	Update(ctx context.Context, r portfolio.Resource, fn UpdateFunc) error
	// Seed writes v only when r has no document yet.
	Seed(ctx context.Context, r portfolio.Resource, v any) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Encode renders v the way documents are stored: two-space indented JSON.
func Encode(v any) ([]byte, error) {
	if raw, ok := v.(json.RawMessage); ok {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, fmt.Errorf("encode document: %w", err)
		}
		return buf.Bytes(), nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

func checkResource(r portfolio.Resource) error {
	if !r.Valid() {
		return fmt.Errorf("unknown resource %q", r)
	}
	return nil
}
