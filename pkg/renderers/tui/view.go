package tui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goliatone/go-movieform/pkg/controller"
	"github.com/goliatone/go-movieform/pkg/model"
)

// View prints controller updates to a terminal. Loading is shown with a
// spinner; scrolling has no terminal equivalent and is ignored.
type View struct {
	mu      sync.Mutex
	out     io.Writer
	theme   Theme
	spinner SpinnerFunc
	stop    func()
	label   string
}

var _ controller.View = (*View)(nil)

// NewView builds a terminal view. Output defaults to stdout.
func NewView(options ...Option) *View {
	cfg := newConfig(options)
	out := cfg.out
	if out == nil {
		out = os.Stdout
	}
	return &View{out: out, theme: cfg.theme, spinner: cfg.spinner}
}

// RatingLabel reports the last label set by the controller.
func (v *View) RatingLabel() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.label
}

func (v *View) SetRatingLabel(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.label = text
	v.println(formatRatingLabel(text))
}

func (v *View) ShowLoading(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if visible {
		if v.stop == nil {
			v.stop = v.spinner(v.out, loadingMessage)
		}
		return
	}
	if v.stop != nil {
		v.stop()
		v.stop = nil
	}
}

// ClearResults is a no-op: printed results stay in the scrollback.
func (v *View) ClearResults() {}

func (v *View) ShowResults() {}

func (v *View) RenderCards(cards []model.Card) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprint(v.out, formatCards(cards))
}

func (v *View) RenderEmpty(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(v.theme.InfoPrefix + message)
}

func (v *View) RenderError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(formatError(v.theme, message))
}

func (v *View) RenderValidation(fields map[string][]string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.println(formatValidation(v.theme, fields))
}

func (v *View) ScrollToResults() {}

func (v *View) println(line string) {
	fmt.Fprintln(v.out, line)
}
