package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

var discard = log.New(io.Discard, "", 0)

func newRepo(t *testing.T) (*StoreMessageRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo := NewStoreMessageRepository(store.NewFile(dir, discard))
	repo.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC) }
	return repo, dir
}

func fakeMessage(f *gofakeit.Faker) NewMessage {
	return NewMessage{Name: f.Name(), Email: f.Email(), Message: f.Sentence(12)}
}

func TestNextMessageID(t *testing.T) {
	if got := NextMessageID(nil); got != 1 {
		t.Fatalf("expected 1 for empty, got %d", got)
	}
	msgs := []portfolio.Message{{ID: 2}, {ID: 7}, {ID: 5}}
	if got := NextMessageID(msgs); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
}

func TestAppend_FirstMessageGetsIDOne(t *testing.T) {
	repo, _ := newRepo(t)
	f := gofakeit.New(1)

	msg, err := repo.Append(context.Background(), fakeMessage(f))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if msg.ID != 1 {
		t.Fatalf("expected id 1, got %d", msg.ID)
	}
	if msg.Read {
		t.Fatalf("new message must be unread")
	}
	if msg.CreatedAt != "2024-05-06T07:08:09.123Z" {
		t.Fatalf("unexpected created_at %q", msg.CreatedAt)
	}
}

func TestAppend_ContinuesFromMaxExistingID(t *testing.T) {
	repo, dir := newRepo(t)
	seed := `[{"id":3,"name":"a","email":"b","message":"c","read":true,"created_at":"2023-01-01T00:00:00.000Z"}]`
	if err := os.WriteFile(filepath.Join(dir, "messages.json"), []byte(seed), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	msg, err := repo.Append(context.Background(), NewMessage{Name: "n", Email: "e", Message: "m"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if msg.ID != 4 {
		t.Fatalf("expected id 4, got %d", msg.ID)
	}

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != 3 || !all[0].Read || all[1].ID != 4 {
		t.Fatalf("unexpected messages: %+v", all)
	}
}

func TestAppend_ConcurrentSubmissionsGetDistinctIDs(t *testing.T) {
	repo, _ := newRepo(t)
	const n = 30

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			_, err := repo.Append(context.Background(), fakeMessage(gofakeit.New(seed)))
			errs <- err
		}(int64(i))
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != n {
		t.Fatalf("expected %d messages, got %d", n, len(all))
	}
	seen := map[int64]bool{}
	for _, m := range all {
		if seen[m.ID] {
			t.Fatalf("duplicate id %d", m.ID)
		}
		seen[m.ID] = true
	}
	for id := int64(1); id <= n; id++ {
		if !seen[id] {
			t.Fatalf("missing id %d", id)
		}
	}
}

func TestAppend_WrongShapeIsAnError(t *testing.T) {
	repo, dir := newRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "messages.json"), []byte(`{"id":1}`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := repo.Append(context.Background(), NewMessage{Name: "n", Email: "e", Message: "m"}); err == nil {
		t.Fatalf("expected error for non-array messages document")
	}

	b, _ := os.ReadFile(filepath.Join(dir, "messages.json"))
	if string(b) != `{"id":1}` {
		t.Fatalf("document modified: %s", b)
	}
}

func TestList_MissingDocumentIsEmpty(t *testing.T) {
	repo, _ := newRepo(t)
	all, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", all)
	}
}

func TestSetRead(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	f := gofakeit.New(7)

	for i := 0; i < 2; i++ {
		if _, err := repo.Append(ctx, fakeMessage(f)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	msg, err := repo.SetRead(ctx, 2, true)
	if err != nil {
		t.Fatalf("set read: %v", err)
	}
	if msg.ID != 2 || !msg.Read {
		t.Fatalf("unexpected message %+v", msg)
	}

	if _, err := repo.SetRead(ctx, 99, true); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}

	all, _ := repo.List(ctx)
	if all[0].Read || !all[1].Read {
		t.Fatalf("unexpected read flags: %+v", all)
	}
}

func TestStoreDocumentRepository_Verbatim(t *testing.T) {
	dir := t.TempDir()
	raw := `[{"name":"Go","category":"Backend","display_order":1,"custom":"kept"}]`
	if err := os.WriteFile(filepath.Join(dir, "skills.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	repo := NewStoreDocumentRepository(store.NewFile(dir, discard))
	got, err := repo.Get(context.Background(), portfolio.ResourceSkills)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != raw {
		t.Fatalf("expected verbatim document, got %s", got)
	}

	var v []map[string]any
	if err := json.Unmarshal(got, &v); err != nil || v[0]["custom"] != "kept" {
		t.Fatalf("unexpected decode: %v %v", v, err)
	}
}
