package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CreatedAtLayout matches the millisecond ISO-8601 form browsers emit from
// Date.toISOString, so stored timestamps stay comparable as strings.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z"

type Profile struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Bio          string `json:"bio"`
	Email        string `json:"email"`
	Location     string `json:"location"`
	GithubURL    string `json:"github_url,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	FacebookURL  string `json:"facebook_url,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	ResumeURL    string `json:"resume_url,omitempty"`
}

type Skill struct {
	ID           *int64 `json:"id,omitempty"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Proficiency  int    `json:"proficiency"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order"`
}

type Project struct {
	ID           *int64       `json:"id,omitempty"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ImageURL     string       `json:"image_url"`
	GithubURL    string       `json:"github_url"`
	LiveURL      string       `json:"live_url"`
	Featured     bool         `json:"featured"`
	DisplayOrder int          `json:"display_order"`
	Technologies Technologies `json:"technologies,omitempty"`
}

type Message struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

// CreatedTime parses CreatedAt. Records written by other tools may carry
// plain RFC3339 timestamps, so both layouts are accepted.
func (m Message) CreatedTime() (time.Time, error) {
	if t, err := time.Parse(CreatedAtLayout, m.CreatedAt); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, m.CreatedAt)
}

var ErrMalformedTechnologies = errors.New("malformed technologies")

// Technologies holds the raw project technologies value. Stored documents
// carry either a JSON array of strings or a string containing one.
type Technologies json.RawMessage

func TechnologiesOf(items ...string) Technologies {
	b, _ := json.Marshal(items)
	return Technologies(b)
}

// EncodedTechnologiesOf produces the string-wrapped form some documents use.
func EncodedTechnologiesOf(items ...string) Technologies {
	inner, _ := json.Marshal(items)
	b, _ := json.Marshal(string(inner))
	return Technologies(b)
}

func (t Technologies) MarshalJSON() ([]byte, error) {
	if len(t) == 0 {
		return []byte("null"), nil
	}
	return []byte(t), nil
}

func (t *Technologies) UnmarshalJSON(b []byte) error {
	if t == nil {
		return errors.New("technologies: UnmarshalJSON on nil pointer")
	}
	*t = append((*t)[0:0], b...)
	return nil
}

// List decodes the technologies into a slice. A missing or null value is an
// empty list; anything that is neither a string array nor a string holding
// one yields ErrMalformedTechnologies.
func (t Technologies) List() ([]string, error) {
	if len(t) == 0 || string(t) == "null" {
		return nil, nil
	}

	var items []string
	if err := json.Unmarshal(t, &items); err == nil {
		return items, nil
	}

	var encoded string
	if err := json.Unmarshal(t, &encoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTechnologies, err)
	}
	if err := json.Unmarshal([]byte(encoded), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTechnologies, err)
	}
	return items, nil
}
