package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"portfolio/internal/domain/portfolio"
)

// File keeps each resource in <dir>/<resource>.json. Writes go through a
// temp file and rename so readers never observe a partial document.
type File struct {
	dir    string
	logger *log.Logger

	mu sync.Mutex
}

func NewFile(dir string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.Default()
	}
	return &File{dir: dir, logger: logger}
}

func (s *File) path(r portfolio.Resource) string {
	return filepath.Join(s.dir, r.FileName())
}

func (s *File) Read(ctx context.Context, r portfolio.Resource) (json.RawMessage, error) {
	if err := checkResource(r); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.read(r)
}

func (s *File) read(r portfolio.Resource) (json.RawMessage, error) {
	p := s.path(r)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		s.logger.Printf("Store read failed | resource=%s path=%s error=%v", r, p, err)
		return nil, fmt.Errorf("read %s: %w", r, err)
	}
	if !json.Valid(b) {
		s.logger.Printf("Store document malformed | resource=%s path=%s", r, p)
		return nil, ErrMalformed
	}
	return json.RawMessage(b), nil
}

func (s *File) Write(ctx context.Context, r portfolio.Resource, v any) error {
	if err := checkResource(r); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(r, v)
}

func (s *File) write(r portfolio.Resource, v any) error {
	b, err := Encode(v)
	if err != nil {
		s.logger.Printf("Store write failed | resource=%s error=%v", r, err)
		return err
	}

	p := s.path(r)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		s.logger.Printf("Store write failed | resource=%s path=%s error=%v", r, p, err)
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), "."+r.FileName()+".*")
	if err != nil {
		s.logger.Printf("Store write failed | resource=%s path=%s error=%v", r, p, err)
		return fmt.Errorf("write %s: %w", r, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		s.logger.Printf("Store write failed | resource=%s path=%s error=%v", r, p, err)
		return fmt.Errorf("write %s: %w", r, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", r, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", r, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", r, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		s.logger.Printf("Store write failed | resource=%s path=%s error=%v", r, p, err)
		return fmt.Errorf("replace %s: %w", r, err)
	}
	return nil
}

func (s *File) Update(ctx context.Context, r portfolio.Resource, fn UpdateFunc) error {
	if err := checkResource(r); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.read(r)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	next, err := fn(cur)
	if err != nil {
		return err
	}
	return s.write(r, next)
}

func (s *File) Seed(ctx context.Context, r portfolio.Resource, v any) (bool, error) {
	if err := checkResource(r); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(r)); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", r, err)
	}

	if err := s.write(r, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *File) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *File) Close() error { return nil }
