package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"sync"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/repository"
	"portfolio/internal/store"
)

var quiet = log.New(io.Discard, "", 0)

type mockDocs struct {
	docs map[portfolio.Resource]string
	err  error
}

func (m mockDocs) Get(_ context.Context, r portfolio.Resource) (json.RawMessage, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.docs[r]
	if !ok {
		return nil, store.ErrNotFound
	}
	return json.RawMessage(s), nil
}

type memoryMessages struct {
	mu        sync.Mutex
	items     []portfolio.Message
	appendErr error
	listErr   error
}

func (m *memoryMessages) Append(_ context.Context, in repository.NewMessage) (portfolio.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return portfolio.Message{}, m.appendErr
	}
	msg := portfolio.Message{
		ID:      repository.NextMessageID(m.items),
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}
	m.items = append(m.items, msg)
	return msg, nil
}

func (m *memoryMessages) List(context.Context) ([]portfolio.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]portfolio.Message, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memoryMessages) SetRead(_ context.Context, id int64, read bool) (portfolio.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Read = read
			return m.items[i], nil
		}
	}
	return portfolio.Message{}, repository.ErrMessageNotFound
}

type recordingNotifier struct {
	got []portfolio.Message
}

func (n *recordingNotifier) MessageCreated(msg portfolio.Message) {
	n.got = append(n.got, msg)
}
