package tui

import (
	"context"
	"strings"

	"github.com/goliatone/go-movieform/pkg/render"
)

const loadingMessage = "Fetching recommendations..."

// Renderer prints a render.Snapshot as plain terminal text.
type Renderer struct {
	theme Theme
}

var _ render.Renderer = (*Renderer)(nil)

// NewRenderer builds the terminal renderer. Only WithTheme applies.
func NewRenderer(options ...Option) *Renderer {
	cfg := newConfig(options)
	return &Renderer{theme: cfg.theme}
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, snapshot render.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options = options.Merge(snapshot)

	var sections []string
	if snapshot.RatingLabel != "" {
		sections = append(sections, formatRatingLabel(snapshot.RatingLabel))
	}
	if snapshot.Loading {
		sections = append(sections, r.theme.InfoPrefix+loadingMessage)
	}
	if len(options.Errors) > 0 {
		sections = append(sections, formatValidation(r.theme, options.Errors))
	}
	for _, message := range options.FormErrors {
		sections = append(sections, formatError(r.theme, message))
	}
	if snapshot.ResultsVisible {
		switch {
		case snapshot.Failed():
			sections = append(sections, formatError(r.theme, snapshot.Error))
		case snapshot.Empty != "":
			sections = append(sections, r.theme.InfoPrefix+snapshot.Empty)
		case len(snapshot.Cards) > 0:
			sections = append(sections, strings.TrimRight(formatCards(snapshot.Cards), "\n"))
		}
	}

	if len(sections) == 0 {
		return nil, nil
	}
	return []byte(strings.Join(sections, "\n") + "\n"), nil
}
