// Package schema checks documents and contact submissions against the JSON
// schemas embedded in the binary.
package schema

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"portfolio/internal/domain/portfolio"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var ErrInvalid = errors.New("schema validation failed")

// ValidationError lists the individual violations of one validation run.
type ValidationError struct {
	Schema string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalid, e.Schema, strings.Join(e.Issues, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

const contactSchema = "contact"

var (
	loadOnce sync.Once
	loaded   map[string]*gojsonschema.Schema
	loadErr  error
)

func schemas() (map[string]*gojsonschema.Schema, error) {
	loadOnce.Do(func() {
		names := []string{contactSchema}
		for _, r := range portfolio.Resources() {
			names = append(names, string(r))
		}

		out := make(map[string]*gojsonschema.Schema, len(names))
		for _, name := range names {
			b, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
			if err != nil {
				loadErr = fmt.Errorf("read schema %s: %w", name, err)
				return
			}
			s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
			if err != nil {
				loadErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			out[name] = s
		}
		loaded = out
	})
	return loaded, loadErr
}

func validate(name string, doc gojsonschema.JSONLoader) error {
	all, err := schemas()
	if err != nil {
		return err
	}
	s, ok := all[name]
	if !ok {
		return fmt.Errorf("no schema named %q", name)
	}

	res, err := s.Validate(doc)
	if err != nil {
		return &ValidationError{Schema: name, Issues: []string{err.Error()}}
	}
	if res.Valid() {
		return nil
	}

	issues := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		issues = append(issues, e.String())
	}
	return &ValidationError{Schema: name, Issues: issues}
}

// Document validates raw JSON stored for r.
func Document(r portfolio.Resource, raw []byte) error {
	if !r.Valid() {
		return fmt.Errorf("unknown resource %q", r)
	}
	return validate(string(r), gojsonschema.NewBytesLoader(raw))
}

// Contact validates a contact submission. v is any value that marshals to
// an object with name, email and message fields.
func Contact(v any) error {
	return validate(contactSchema, gojsonschema.NewGoLoader(v))
}
