package presentation

import (
	"context"
	"errors"
	"time"
)

// ContactSender delivers a completed contact form.
type ContactSender interface {
	SubmitContact(ctx context.Context, form ContactForm) error
}

// Submit runs one submission through the contact state machine. An
// incomplete form never reaches sender. There is no retry.
func Submit(ctx context.Context, s State, form ContactForm, sender ContactSender, now func() time.Time) State {
	if now == nil {
		now = time.Now
	}

	s = Reduce(s, ContactSubmitted{Form: form, At: now()})
	if s.Contact.Status != ContactSubmitting {
		return s
	}

	if err := sender.SubmitContact(ctx, form); err != nil {
		return Reduce(s, ContactFailed{Message: noticeFor(err), At: now()})
	}
	return Reduce(s, ContactSucceeded{At: now()})
}

// noticeFor prefers the server's own error text, falling back to a generic
// notice for transport failures.
func noticeFor(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return NoticeSendFailed
}
