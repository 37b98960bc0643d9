package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"portfolio/internal/domain/portfolio"

	_ "modernc.org/sqlite"
)

// SQLite is an embedded key-document store: one row per resource.
type SQLite struct {
	db     *sql.DB
	logger *log.Logger

	mu sync.Mutex
}

func OpenSQLite(path string, logger *log.Logger) (*SQLite, error) {
	if logger == nil {
		logger = log.Default()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &SQLite{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS documents (
		resource TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	return err
}

func (s *SQLite) Read(ctx context.Context, r portfolio.Resource) (json.RawMessage, error) {
	if err := checkResource(r); err != nil {
		return nil, err
	}
	return s.read(ctx, s.db, r)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLite) read(ctx context.Context, q queryRower, r portfolio.Resource) (json.RawMessage, error) {
	var body string
	err := q.QueryRowContext(ctx, `SELECT body FROM documents WHERE resource = ?`, string(r)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Printf("Store read failed | resource=%s error=%v", r, err)
		return nil, fmt.Errorf("read %s: %w", r, err)
	}
	if !json.Valid([]byte(body)) {
		s.logger.Printf("Store document malformed | resource=%s", r)
		return nil, ErrMalformed
	}
	return json.RawMessage(body), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLite) write(ctx context.Context, e execer, r portfolio.Resource, v any) error {
	b, err := Encode(v)
	if err != nil {
		s.logger.Printf("Store write failed | resource=%s error=%v", r, err)
		return err
	}
	_, err = e.ExecContext(ctx, `
	INSERT INTO documents (resource, body, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(resource) DO UPDATE SET
		body = excluded.body,
		updated_at = excluded.updated_at
	`, string(r), string(b), time.Now().UTC())
	if err != nil {
		s.logger.Printf("Store write failed | resource=%s error=%v", r, err)
		return fmt.Errorf("write %s: %w", r, err)
	}
	return nil
}

func (s *SQLite) Write(ctx context.Context, r portfolio.Resource, v any) error {
	if err := checkResource(r); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, s.db, r, v)
}

func (s *SQLite) Update(ctx context.Context, r portfolio.Resource, fn UpdateFunc) error {
	if err := checkResource(r); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	cur, err := s.read(ctx, tx, r)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}
	if err := s.write(ctx, tx, r, next); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLite) Seed(ctx context.Context, r portfolio.Resource, v any) (bool, error) {
	if err := checkResource(r); err != nil {
		return false, err
	}
	b, err := Encode(v)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
	INSERT INTO documents (resource, body, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(resource) DO NOTHING
	`, string(r), string(b), time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("seed %s: %w", r, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
