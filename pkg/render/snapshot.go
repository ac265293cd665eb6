package render

import (
	"sync"

	"github.com/goliatone/go-movieform/pkg/model"
)

// Snapshot is the visible state of the form page at one point in time.
type Snapshot struct {
	// State names the controller lifecycle step (idle, loading,
	// displaying-results, displaying-error).
	State          string
	Loading        bool
	ResultsVisible bool
	RatingLabel    string
	Cards          []model.Card
	// Empty holds the empty-state message when a successful response carried
	// no recommendations.
	Empty string
	// Error holds the message shown in the alert, either the backend's error
	// text or the generic transport failure message.
	Error string
	// Validation lists local validation messages by field identifier.
	Validation map[string][]string
	Scroll     bool
}

// HasResults reports whether any result content (cards, empty message or
// alert) is present.
func (s Snapshot) HasResults() bool {
	return len(s.Cards) > 0 || s.Empty != "" || s.Error != ""
}

// Failed reports whether the submission ended in an error alert. A backend
// failure with an empty error text still counts.
func (s Snapshot) Failed() bool {
	return s.Error != "" || (s.State == "displaying-error" && len(s.Validation) == 0)
}

// Recorder is a controller view that accumulates updates into a Snapshot, so
// the outcome of a submission can be rendered afterwards by any Renderer.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	snapshot Snapshot
}

// NewRecorder returns a Recorder seeded with the initial rating label.
func NewRecorder(ratingLabel string) *Recorder {
	return &Recorder{snapshot: Snapshot{State: "idle", RatingLabel: ratingLabel}}
}

// Snapshot returns a copy of the accumulated state.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.snapshot
	out.Cards = append([]model.Card(nil), r.snapshot.Cards...)
	if len(r.snapshot.Validation) > 0 {
		out.Validation = make(map[string][]string, len(r.snapshot.Validation))
		for field, messages := range r.snapshot.Validation {
			out.Validation[field] = append([]string(nil), messages...)
		}
	}
	return out
}

func (r *Recorder) SetRatingLabel(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.RatingLabel = text
}

func (r *Recorder) ShowLoading(visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Loading = visible
	if visible {
		r.snapshot.State = "loading"
	}
}

func (r *Recorder) ClearResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Cards = nil
	r.snapshot.Empty = ""
	r.snapshot.Error = ""
	r.snapshot.Validation = nil
	r.snapshot.Scroll = false
}

func (r *Recorder) ShowResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.ResultsVisible = true
}

func (r *Recorder) RenderCards(cards []model.Card) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Cards = append([]model.Card(nil), cards...)
	r.snapshot.State = "displaying-results"
}

func (r *Recorder) RenderEmpty(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Empty = message
	r.snapshot.State = "displaying-results"
}

func (r *Recorder) RenderError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Error = message
	r.snapshot.State = "displaying-error"
}

func (r *Recorder) RenderValidation(fields map[string][]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Validation = make(map[string][]string, len(fields))
	for field, messages := range fields {
		r.snapshot.Validation[field] = append([]string(nil), messages...)
	}
	r.snapshot.State = "displaying-error"
}

func (r *Recorder) ScrollToResults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Scroll = true
}
