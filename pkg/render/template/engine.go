package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// DefaultExtension is appended to template names that carry no extension.
const DefaultExtension = ".tmpl"

// Engine executes pongo2 templates loaded from an fs.FS. Include paths are
// resolved relative to the including template, so "templates/page.tmpl"
// includes "components/card.tmpl" as templates/components/card.tmpl.
type Engine struct {
	set *pongo2.TemplateSet
	ext string
}

// Option configures an Engine.
type Option func(*Engine)

// WithExtension overrides DefaultExtension.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// New builds an Engine over files. Parsed templates are cached by the
// underlying template set.
func New(files fs.FS, options ...Option) (*Engine, error) {
	if files == nil {
		return nil, errors.New("template: filesystem is required")
	}
	e := &Engine{
		set: pongo2.NewSet("movieform", pongo2.NewFSLoader(files)),
		ext: DefaultExtension,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Execute renders the named template into w. Nothing is written when
// rendering fails. Output is HTML-escaped unless a template marks a value
// safe.
func (e *Engine) Execute(w io.Writer, name string, data map[string]any) error {
	if e == nil || e.set == nil {
		return errors.New("template: engine is nil")
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}

	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("template: load %q: %w", name, err)
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("template: convert data for %q: %w", name, err)
	}
	if err := tmpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("template: execute %q: %w", name, err)
	}
	return nil
}

// toContext round-trips data through encoding/json so templates address
// struct fields by their json names (card.badge_class).
func toContext(data map[string]any) (pongo2.Context, error) {
	if len(data) == 0 {
		return pongo2.Context{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	ctx := pongo2.Context{}
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}
