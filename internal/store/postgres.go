package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"portfolio/internal/database"
	"portfolio/internal/domain/portfolio"
)

// Postgres stores documents as JSONB rows in the documents table created by
// the migration runner. JSONB normalises whitespace and key order, so reads
// return semantically equal rather than byte-identical documents.
type Postgres struct {
	db     database.DB
	logger *log.Logger
}

func NewPostgres(db database.DB, logger *log.Logger) *Postgres {
	if logger == nil {
		logger = log.Default()
	}
	return &Postgres{db: db, logger: logger}
}

func (s *Postgres) Read(ctx context.Context, r portfolio.Resource) (json.RawMessage, error) {
	if err := checkResource(r); err != nil {
		return nil, err
	}
	return s.read(ctx, s.db.QueryRow(ctx, `SELECT body::text FROM documents WHERE resource = $1`, string(r)), r)
}

func (s *Postgres) read(_ context.Context, row database.Row, r portfolio.Resource) (json.RawMessage, error) {
	var body string
	err := row.Scan(&body)
	if errors.Is(err, database.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Printf("Store read failed | resource=%s error=%v", r, err)
		return nil, fmt.Errorf("read %s: %w", r, err)
	}
	// Update's lock placeholder.
	if body == "null" {
		return nil, ErrNotFound
	}
	return json.RawMessage(body), nil
}

const upsertDocument = `
INSERT INTO documents (resource, body, updated_at) VALUES ($1, $2::jsonb, now())
ON CONFLICT (resource) DO UPDATE SET
	body = excluded.body,
	updated_at = excluded.updated_at
`

func (s *Postgres) Write(ctx context.Context, r portfolio.Resource, v any) error {
	if err := checkResource(r); err != nil {
		return err
	}
	b, err := Encode(v)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, upsertDocument, string(r), string(b)); err != nil {
		s.logger.Printf("Store write failed | resource=%s error=%v", r, err)
		return fmt.Errorf("write %s: %w", r, err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, r portfolio.Resource, fn UpdateFunc) error {
	if err := checkResource(r); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	// Make sure a row exists to lock, so the first writers of a fresh
	// resource are serialised too.
	if _, err := tx.Exec(ctx, `
	INSERT INTO documents (resource, body, updated_at) VALUES ($1, 'null'::jsonb, now())
	ON CONFLICT (resource) DO NOTHING`, string(r)); err != nil {
		return fmt.Errorf("lock %s: %w", r, err)
	}

	cur, err := s.read(ctx, tx.QueryRow(ctx, `SELECT body::text FROM documents WHERE resource = $1 FOR UPDATE`, string(r)), r)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}
	b, err := Encode(next)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, upsertDocument, string(r), string(b)); err != nil {
		s.logger.Printf("Store write failed | resource=%s error=%v", r, err)
		return fmt.Errorf("write %s: %w", r, err)
	}
	return tx.Commit(ctx)
}

func (s *Postgres) Seed(ctx context.Context, r portfolio.Resource, v any) (bool, error) {
	if err := checkResource(r); err != nil {
		return false, err
	}
	b, err := Encode(v)
	if err != nil {
		return false, err
	}
	n, err := s.db.Exec(ctx, `
	INSERT INTO documents (resource, body, updated_at) VALUES ($1, $2::jsonb, now())
	ON CONFLICT (resource) DO NOTHING`, string(r), string(b))
	if err != nil {
		return false, fmt.Errorf("seed %s: %w", r, err)
	}
	return n > 0, nil
}

func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Postgres) Close() error {
	return s.db.Close()
}
