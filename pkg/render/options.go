package render

import (
	"github.com/goliatone/go-movieform/pkg/model"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the snapshot.
type RenderOptions struct {
	// Action is the URL the form posts to. Renderers fall back to an empty
	// action (the current URL) when unset.
	Action string
	// Values pre-populates rendered controls, keyed by field identifier.
	Values model.FormValues
	// Errors surfaces validation feedback keyed by field identifier. Use
	// MapErrorPayload to turn backend or contract payloads into this shape.
	Errors map[string][]string
	// FormErrors are messages that belong to no particular field.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs (CSRF tokens and the like).
	HiddenFields map[string]string
}

// Merge returns a copy of o whose Errors include the snapshot's validation
// messages. Explicit option errors take precedence per field.
func (o RenderOptions) Merge(snapshot Snapshot) RenderOptions {
	if len(snapshot.Validation) == 0 {
		return o
	}
	merged := make(map[string][]string, len(o.Errors)+len(snapshot.Validation))
	for field, messages := range snapshot.Validation {
		merged[field] = normalizeMessages(messages)
	}
	for field, messages := range o.Errors {
		merged[field] = normalizeMessages(messages)
	}
	o.Errors = merged
	return o
}
