package ws

import (
	"encoding/json"
	"time"

	"portfolio/internal/domain/portfolio"
)

const EventMessageCreated = "message_created"

type MessageCreatedEvent struct {
	Type      string            `json:"type"`
	Message   portfolio.Message `json:"message"`
	Timestamp string            `json:"timestamp"`
}

// Notifier turns domain events into hub broadcasts.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) MessageCreated(msg portfolio.Message) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(MessageCreatedEvent{
		Type:      EventMessageCreated,
		Message:   msg,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		n.hub.logger.Printf("WS encode failed | event=%s error=%v", EventMessageCreated, err)
		return
	}
	n.hub.Broadcast(b)
}
