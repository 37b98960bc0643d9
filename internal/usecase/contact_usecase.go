package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"portfolio/internal/domain/portfolio"
	"portfolio/internal/repository"
	"portfolio/internal/schema"
)

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// MessageNotifier is told about every stored contact message.
type MessageNotifier interface {
	MessageCreated(msg portfolio.Message)
}

type ContactUsecase interface {
	Submit(ctx context.Context, in ContactInput) (portfolio.Message, error)
}

type Contact struct {
	messages repository.MessageRepository
	notifier MessageNotifier
	logger   *log.Logger
}

func NewContactUsecase(messages repository.MessageRepository, notifier MessageNotifier, logger *log.Logger) *Contact {
	if logger == nil {
		logger = log.Default()
	}
	return &Contact{messages: messages, notifier: notifier, logger: logger}
}

// Submit stores a contact message. Fields are kept exactly as given; an
// empty field is ErrInvalidInput and nothing is written.
func (u *Contact) Submit(ctx context.Context, in ContactInput) (portfolio.Message, error) {
	if err := schema.Contact(in); err != nil {
		if errors.Is(err, schema.ErrInvalid) {
			return portfolio.Message{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return portfolio.Message{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	msg, err := u.messages.Append(ctx, repository.NewMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	})
	if err != nil {
		u.logger.Printf("Contact save failed | error=%v", err)
		return portfolio.Message{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	u.logger.Printf("Contact saved | id=%d", msg.ID)
	if u.notifier != nil {
		u.notifier.MessageCreated(msg)
	}
	return msg, nil
}
