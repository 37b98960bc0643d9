package store

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"portfolio/internal/database/migration"
	"portfolio/internal/database/postgres"
	"portfolio/internal/domain/portfolio"
)

var discard = log.New(io.Discard, "", 0)

type backend struct {
	name string
	open func(t *testing.T) Store
}

func backends() []backend {
	return []backend{
		{name: "file", open: func(t *testing.T) Store {
			return NewFile(filepath.Join(t.TempDir(), "data"), discard)
		}},
		{name: "sqlite", open: func(t *testing.T) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "portfolio.db"), discard)
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
		{name: "postgres", open: openPostgres},
	}
}

// openPostgres runs against the database in PORTFOLIO_TEST_POSTGRES_DSN and
// skips when it is unset. The documents table is emptied first.
func openPostgres(t *testing.T) Store {
	t.Helper()
	dsn := os.Getenv("PORTFOLIO_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PORTFOLIO_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := postgres.ConnectDSN(ctx, dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	if err := (migration.Runner{}).Run(ctx, pool); err != nil {
		_ = pool.Close()
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM documents`); err != nil {
		_ = pool.Close()
		t.Fatalf("reset documents: %v", err)
	}

	s := NewPostgres(pool, discard)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func decode(t *testing.T, raw []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return v
}

func TestStore_ReadMissing(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			_, err := s.Read(context.Background(), portfolio.ResourceProfile)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	doc := []map[string]any{
		{"name": "Go", "category": "Backend", "proficiency": 90.0, "display_order": 2.0},
		{"name": "HTML", "category": "Frontend", "proficiency": 80.0, "display_order": 1.0, "extra": []any{"kept"}},
	}

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			ctx := context.Background()

			if err := s.Write(ctx, portfolio.ResourceSkills, doc); err != nil {
				t.Fatalf("write: %v", err)
			}
			raw, err := s.Read(ctx, portfolio.ResourceSkills)
			if err != nil {
				t.Fatalf("read: %v", err)
			}

			want := decode(t, mustJSON(t, doc))
			if got := decode(t, raw); !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
			}
		})
	}
}

func TestStore_UnknownResource(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			if _, err := s.Read(context.Background(), portfolio.Resource("secrets")); err == nil {
				t.Fatalf("expected error for unknown resource")
			}
		})
	}
}

func TestStore_SeedNeverOverwrites(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			ctx := context.Background()

			created, err := s.Seed(ctx, portfolio.ResourceProfile, portfolio.DefaultProfile())
			if err != nil || !created {
				t.Fatalf("expected first seed to create, created=%v err=%v", created, err)
			}

			custom := portfolio.Profile{Name: "Someone Else"}
			if err := s.Write(ctx, portfolio.ResourceProfile, custom); err != nil {
				t.Fatalf("write: %v", err)
			}

			created, err = s.Seed(ctx, portfolio.ResourceProfile, portfolio.DefaultProfile())
			if err != nil || created {
				t.Fatalf("expected second seed to be a no-op, created=%v err=%v", created, err)
			}

			raw, err := s.Read(ctx, portfolio.ResourceProfile)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			var got portfolio.Profile
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.Name != "Someone Else" {
				t.Fatalf("seed overwrote existing document: %+v", got)
			}
		})
	}
}

func TestStore_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	const writers = 25

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			ctx := context.Background()

			var wg sync.WaitGroup
			errs := make(chan error, writers)
			for i := 0; i < writers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- s.Update(ctx, portfolio.ResourceMessages, func(cur json.RawMessage) (any, error) {
						var ids []int
						if cur != nil {
							if err := json.Unmarshal(cur, &ids); err != nil {
								return nil, err
							}
						}
						return append(ids, len(ids)+1), nil
					})
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				if err != nil {
					t.Fatalf("update: %v", err)
				}
			}

			raw, err := s.Read(ctx, portfolio.ResourceMessages)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			var ids []int
			if err := json.Unmarshal(raw, &ids); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(ids) != writers {
				t.Fatalf("expected %d entries, got %d", writers, len(ids))
			}
			for i, id := range ids {
				if id != i+1 {
					t.Fatalf("expected sequential ids, got %v", ids)
				}
			}
		})
	}
}

func TestStore_UpdateErrorLeavesDocument(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			ctx := context.Background()

			if err := s.Write(ctx, portfolio.ResourceMessages, []int{1}); err != nil {
				t.Fatalf("write: %v", err)
			}
			boom := errors.New("boom")
			err := s.Update(ctx, portfolio.ResourceMessages, func(json.RawMessage) (any, error) {
				return nil, boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("expected boom, got %v", err)
			}

			raw, err := s.Read(ctx, portfolio.ResourceMessages)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if strings.Join(strings.Fields(string(raw)), "") != "[1]" {
				t.Fatalf("document changed: %s", raw)
			}
		})
	}
}

func TestFile_MalformedDocumentIsAbsent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "skills.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := NewFile(dir, discard)
	_, err := s.Read(context.Background(), portfolio.ResourceSkills)
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed matching ErrNotFound, got %v", err)
	}

	var seen json.RawMessage = json.RawMessage("unset")
	err = s.Update(context.Background(), portfolio.ResourceSkills, func(cur json.RawMessage) (any, error) {
		seen = cur
		return []any{}, nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if seen != nil {
		t.Fatalf("expected nil current document, got %s", seen)
	}
}

func TestFile_WritesPrettyJSONAndCreatesDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewFile(dir, discard)

	if err := s.Write(context.Background(), portfolio.ResourceProfile, map[string]string{"name": "A"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "profile.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(b) != "{\n  \"name\": \"A\"\n}" {
		t.Fatalf("unexpected file content: %q", b)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only profile.json, temp files left behind: %v", entries)
	}
}

func TestFile_WriteFailureIsReturned(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "data")
	if err := os.WriteFile(blocker, []byte("a file, not a dir"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := NewFile(blocker, discard)
	if err := s.Write(context.Background(), portfolio.ResourceMessages, []any{}); err == nil {
		t.Fatalf("expected write failure")
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestStore_FailedFirstUpdateLeavesAbsent(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			s := b.open(t)
			ctx := context.Background()

			var seen json.RawMessage = json.RawMessage("unset")
			boom := errors.New("boom")
			err := s.Update(ctx, portfolio.ResourceMessages, func(cur json.RawMessage) (any, error) {
				seen = cur
				return nil, boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("expected boom, got %v", err)
			}
			if seen != nil {
				t.Fatalf("expected nil current document, got %s", seen)
			}

			if _, err := s.Read(ctx, portfolio.ResourceMessages); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after failed update, got %v", err)
			}
			created, err := s.Seed(ctx, portfolio.ResourceMessages, []any{})
			if err != nil || !created {
				t.Fatalf("expected seed to create, created=%v err=%v", created, err)
			}
		})
	}
}
