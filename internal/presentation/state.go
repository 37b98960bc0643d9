package presentation

import (
	"time"

	"portfolio/internal/domain/portfolio"
)

// CategoryAll selects every skill.
const CategoryAll = "all"

// StatusDisplayTimeout is how long a contact success or error notice stays
// visible before the form returns to idle.
const StatusDisplayTimeout = 5 * time.Second

const (
	NoticeFieldsRequired = "Please fill out all fields"
	NoticeSent           = "Message sent successfully! I will get back to you soon."
	NoticeSendFailed     = "Failed to send message. Please try again."
)

type Source string

const (
	SourceNone     Source = ""
	SourceAPI      Source = "api"
	SourceFallback Source = "fallback"
)

type ContactStatus string

const (
	ContactIdle       ContactStatus = "idle"
	ContactSubmitting ContactStatus = "submitting"
	ContactSuccess    ContactStatus = "success"
	ContactError      ContactStatus = "error"
)

type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Complete reports whether every field is non-empty. Values are not
// trimmed.
func (f ContactForm) Complete() bool {
	return f.Name != "" && f.Email != "" && f.Message != ""
}

type ContactState struct {
	Status ContactStatus
	Form   ContactForm
	Notice string
	// ShownAt is when the current notice appeared; Seq identifies it so a
	// stale expiry cannot hide a newer notice.
	ShownAt time.Time
	Seq     int
}

func (c ContactState) ExpiresAt() time.Time {
	if c.Status != ContactSuccess && c.Status != ContactError {
		return time.Time{}
	}
	return c.ShownAt.Add(StatusDisplayTimeout)
}

type State struct {
	Profile        portfolio.Profile
	Skills         []portfolio.Skill
	Projects       []portfolio.Project
	ActiveCategory string
	Source         Source
	Contact        ContactState
}

func Initial() State {
	return State{
		ActiveCategory: CategoryAll,
		Contact:        ContactState{Status: ContactIdle},
	}
}

type Action interface {
	isAction()
}

type DataLoaded struct {
	Profile  portfolio.Profile
	Skills   []portfolio.Skill
	Projects []portfolio.Project
}

type DataFailed struct {
	Err error
}

type CategorySelected struct {
	Category string
}

type ContactSubmitted struct {
	Form ContactForm
	At   time.Time
}

type ContactSucceeded struct {
	At time.Time
}

type ContactFailed struct {
	Message string
	At      time.Time
}

type StatusExpired struct {
	Seq int
}

func (DataLoaded) isAction()       {}
func (DataFailed) isAction()       {}
func (CategorySelected) isAction() {}
func (ContactSubmitted) isAction() {}
func (ContactSucceeded) isAction() {}
func (ContactFailed) isAction()    {}
func (StatusExpired) isAction()    {}

// Reduce returns the state that follows s after a. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case DataLoaded:
		s.Profile = a.Profile
		s.Skills = cloneSkills(a.Skills)
		s.Projects = cloneProjects(a.Projects)
		s.Source = SourceAPI

	case DataFailed:
		// All three sections switch to the fallback together.
		s.Profile = FallbackProfile()
		s.Skills = FallbackSkills()
		s.Projects = FallbackProjects()
		s.Source = SourceFallback

	case CategorySelected:
		if a.Category == "" {
			a.Category = CategoryAll
		}
		s.ActiveCategory = a.Category

	case ContactSubmitted:
		if s.Contact.Status == ContactSubmitting {
			return s
		}
		if !a.Form.Complete() {
			s.Contact = showNotice(s.Contact, ContactError, NoticeFieldsRequired, a.At)
			s.Contact.Form = a.Form
			return s
		}
		s.Contact.Status = ContactSubmitting
		s.Contact.Form = a.Form
		s.Contact.Notice = ""

	case ContactSucceeded:
		if s.Contact.Status != ContactSubmitting {
			return s
		}
		s.Contact = showNotice(s.Contact, ContactSuccess, NoticeSent, a.At)
		s.Contact.Form = ContactForm{}

	case ContactFailed:
		if s.Contact.Status != ContactSubmitting {
			return s
		}
		msg := a.Message
		if msg == "" {
			msg = NoticeSendFailed
		}
		s.Contact = showNotice(s.Contact, ContactError, msg, a.At)

	case StatusExpired:
		if a.Seq != s.Contact.Seq {
			return s
		}
		if s.Contact.Status == ContactSuccess || s.Contact.Status == ContactError {
			s.Contact.Status = ContactIdle
			s.Contact.Notice = ""
		}
	}
	return s
}

// Expire applies the display timeout: a notice shown at least
// StatusDisplayTimeout before now is cleared.
func Expire(s State, now time.Time) State {
	exp := s.Contact.ExpiresAt()
	if exp.IsZero() || now.Before(exp) {
		return s
	}
	return Reduce(s, StatusExpired{Seq: s.Contact.Seq})
}

func showNotice(c ContactState, status ContactStatus, notice string, at time.Time) ContactState {
	c.Status = status
	c.Notice = notice
	c.ShownAt = at
	c.Seq++
	return c
}

func cloneSkills(in []portfolio.Skill) []portfolio.Skill {
	out := make([]portfolio.Skill, len(in))
	copy(out, in)
	return out
}

func cloneProjects(in []portfolio.Project) []portfolio.Project {
	out := make([]portfolio.Project, len(in))
	copy(out, in)
	return out
}
