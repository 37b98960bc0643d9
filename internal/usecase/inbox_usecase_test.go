package usecase

import (
	"context"
	"errors"
	"testing"

	"portfolio/internal/domain/portfolio"
)

func seededInbox() *memoryMessages {
	return &memoryMessages{items: []portfolio.Message{
		{ID: 1, Name: "a", Read: true},
		{ID: 2, Name: "b"},
		{ID: 3, Name: "c", Read: true},
		{ID: 4, Name: "d"},
		{ID: 5, Name: "e"},
	}}
}

func ids(ms []portfolio.Message) []int64 {
	out := make([]int64, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInbox_List(t *testing.T) {
	uc := NewInboxUsecase(seededInbox())

	cases := []struct {
		name   string
		filter InboxFilter
		want   []int64
		total  int
	}{
		{"all newest first", InboxFilter{}, []int64{5, 4, 3, 2, 1}, 5},
		{"unread", InboxFilter{Status: "unread"}, []int64{5, 4, 2}, 3},
		{"read", InboxFilter{Status: "READ"}, []int64{3, 1}, 2},
		{"paged", InboxFilter{Limit: 2, Offset: 1}, []int64{4, 3}, 5},
		{"offset past end", InboxFilter{Offset: 10}, []int64{}, 5},
	}
	for _, tc := range cases {
		page, err := uc.List(context.Background(), tc.filter)
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", tc.name, err)
		}
		if got := ids(page.Items); !equalIDs(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		if page.Total != tc.total || page.Unread != 3 {
			t.Fatalf("%s: unexpected totals %+v", tc.name, page)
		}
	}
}

func TestInbox_List_InvalidFilter(t *testing.T) {
	uc := NewInboxUsecase(seededInbox())
	for _, f := range []InboxFilter{{Status: "spam"}, {Limit: -1}, {Offset: -3}} {
		if _, err := uc.List(context.Background(), f); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", f, err)
		}
	}
}

func TestInbox_List_LimitClamped(t *testing.T) {
	uc := NewInboxUsecase(seededInbox())
	page, err := uc.List(context.Background(), InboxFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Limit != MaxInboxLimit {
		t.Fatalf("expected limit %d, got %d", MaxInboxLimit, page.Limit)
	}
}

func TestInbox_MarkRead(t *testing.T) {
	msgs := seededInbox()
	uc := NewInboxUsecase(msgs)

	m, err := uc.MarkRead(context.Background(), 2, true)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !m.Read || m.ID != 2 {
		t.Fatalf("unexpected message %+v", m)
	}

	if _, err := uc.MarkRead(context.Background(), 42, true); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
	if _, err := uc.MarkRead(context.Background(), 0, true); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestInbox_ListFailure(t *testing.T) {
	uc := NewInboxUsecase(&memoryMessages{listErr: errors.New("boom")})
	if _, err := uc.List(context.Background(), InboxFilter{}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
