package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/repository"
)

const (
	InboxStatusAll    = "all"
	InboxStatusRead   = "read"
	InboxStatusUnread = "unread"

	DefaultInboxLimit = 20
	MaxInboxLimit     = 100
)

type InboxFilter struct {
	Status string
	Limit  int
	Offset int
}

type InboxPage struct {
	Items  []portfolio.Message `json:"items"`
	Total  int                 `json:"total"`
	Unread int                 `json:"unread"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

type InboxUsecase interface {
	List(ctx context.Context, f InboxFilter) (InboxPage, error)
	MarkRead(ctx context.Context, id int64, read bool) (portfolio.Message, error)
}

type Inbox struct {
	messages repository.MessageRepository
}

func NewInboxUsecase(messages repository.MessageRepository) *Inbox {
	return &Inbox{messages: messages}
}

func normalizeInboxFilter(f InboxFilter) (InboxFilter, error) {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	switch f.Status {
	case "":
		f.Status = InboxStatusAll
	case InboxStatusAll, InboxStatusRead, InboxStatusUnread:
	default:
		return f, fmt.Errorf("%w: status %q", ErrInvalidInput, f.Status)
	}
	if f.Limit < 0 || f.Offset < 0 {
		return f, fmt.Errorf("%w: negative paging", ErrInvalidInput)
	}
	if f.Limit == 0 {
		f.Limit = DefaultInboxLimit
	}
	if f.Limit > MaxInboxLimit {
		f.Limit = MaxInboxLimit
	}
	return f, nil
}

// List returns messages newest first. Total counts the messages matching
// the status filter before paging.
func (u *Inbox) List(ctx context.Context, f InboxFilter) (InboxPage, error) {
	f, err := normalizeInboxFilter(f)
	if err != nil {
		return InboxPage{}, err
	}

	all, err := u.messages.List(ctx)
	if err != nil {
		return InboxPage{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	unread := 0
	matched := make([]portfolio.Message, 0, len(all))
	for _, m := range all {
		if !m.Read {
			unread++
		}
		switch {
		case f.Status == InboxStatusRead && !m.Read:
			continue
		case f.Status == InboxStatusUnread && m.Read:
			continue
		}
		matched = append(matched, m)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	page := InboxPage{Items: []portfolio.Message{}, Total: len(matched), Unread: unread, Limit: f.Limit, Offset: f.Offset}
	if f.Offset < len(matched) {
		end := f.Offset + f.Limit
		if end > len(matched) {
			end = len(matched)
		}
		page.Items = matched[f.Offset:end]
	}
	return page, nil
}

func (u *Inbox) MarkRead(ctx context.Context, id int64, read bool) (portfolio.Message, error) {
	if id <= 0 {
		return portfolio.Message{}, fmt.Errorf("%w: id %d", ErrInvalidInput, id)
	}
	msg, err := u.messages.SetRead(ctx, id, read)
	if errors.Is(err, repository.ErrMessageNotFound) {
		return portfolio.Message{}, ErrMessageNotFound
	}
	if err != nil {
		return portfolio.Message{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return msg, nil
}
