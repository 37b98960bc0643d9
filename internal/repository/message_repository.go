package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/store"
)

var ErrMessageNotFound = errors.New("message not found")

type NewMessage struct {
	Name    string
	Email   string
	Message string
}

type MessageRepository interface {
	Append(ctx context.Context, in NewMessage) (portfolio.Message, error)
	List(ctx context.Context) ([]portfolio.Message, error)
	SetRead(ctx context.Context, id int64, read bool) (portfolio.Message, error)
}

type StoreMessageRepository struct {
	store store.Store
	now   func() time.Time
}

func NewStoreMessageRepository(s store.Store) *StoreMessageRepository {
	return &StoreMessageRepository{store: s, now: time.Now}
}

func decodeMessages(raw json.RawMessage) ([]portfolio.Message, error) {
	if raw == nil {
		return []portfolio.Message{}, nil
	}
	var msgs []portfolio.Message
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	if msgs == nil {
		msgs = []portfolio.Message{}
	}
	return msgs, nil
}

// NextMessageID is one more than the largest id present, or 1 when there
// are no messages.
func NextMessageID(msgs []portfolio.Message) int64 {
	var max int64
	for _, m := range msgs {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}

// Append assigns the id and timestamp inside the store's update scope, so
// concurrent submissions get distinct ids and none is dropped.
func (r *StoreMessageRepository) Append(ctx context.Context, in NewMessage) (portfolio.Message, error) {
	var created portfolio.Message
	err := r.store.Update(ctx, portfolio.ResourceMessages, func(cur json.RawMessage) (any, error) {
		msgs, err := decodeMessages(cur)
		if err != nil {
			return nil, err
		}
		created = portfolio.Message{
			ID:        NextMessageID(msgs),
			Name:      in.Name,
			Email:     in.Email,
			Message:   in.Message,
			Read:      false,
			CreatedAt: r.now().UTC().Format(portfolio.CreatedAtLayout),
		}
		return append(msgs, created), nil
	})
	if err != nil {
		return portfolio.Message{}, err
	}
	return created, nil
}

func (r *StoreMessageRepository) List(ctx context.Context) ([]portfolio.Message, error) {
	raw, err := r.store.Read(ctx, portfolio.ResourceMessages)
	if errors.Is(err, store.ErrNotFound) {
		return []portfolio.Message{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeMessages(raw)
}

func (r *StoreMessageRepository) SetRead(ctx context.Context, id int64, read bool) (portfolio.Message, error) {
	var updated portfolio.Message
	err := r.store.Update(ctx, portfolio.ResourceMessages, func(cur json.RawMessage) (any, error) {
		msgs, err := decodeMessages(cur)
		if err != nil {
			return nil, err
		}
		for i := range msgs {
			if msgs[i].ID == id {
				msgs[i].Read = read
				updated = msgs[i]
				return msgs, nil
			}
		}
		return nil, ErrMessageNotFound
	})
	if err != nil {
		return portfolio.Message{}, err
	}
	return updated, nil
}
