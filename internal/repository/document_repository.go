package repository

import (
	"context"
	"encoding/json"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/store"
)

// DocumentRepository exposes the read-only public documents exactly as
// stored.
type DocumentRepository interface {
	Get(ctx context.Context, r portfolio.Resource) (json.RawMessage, error)
}

type StoreDocumentRepository struct {
	store store.Store
}

func NewStoreDocumentRepository(s store.Store) *StoreDocumentRepository {
	return &StoreDocumentRepository{store: s}
}

// Get returns store.ErrNotFound when the document is absent or malformed.
func (r *StoreDocumentRepository) Get(ctx context.Context, res portfolio.Resource) (json.RawMessage, error) {
	return r.store.Read(ctx, res)
}
