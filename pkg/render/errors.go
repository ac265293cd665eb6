package render

import (
	"strings"

	"github.com/goliatone/go-movieform/pkg/model"
)

// ErrorMapping splits an error payload into messages for form fields, keyed
// by field identifier, and messages that belong to the form as a whole.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping blanks and duplicates while keeping the first occurrence.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload assigns error messages to form fields. Keys may be JSON
// pointers into the request body ("/top_n", "/body/top_n"), dotted paths
// ("$.age"), payload keys ("min_rating") or field identifiers ("top-n"). Keys
// that do not name exactly one request field, such as "/recommendations/0/name",
// land in Form.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	for key, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		field, ok := fieldForPath(key)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[field] = append(mapping.Fields[field], messages...)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func fieldForPath(key string) (string, bool) {
	path := strings.TrimLeft(strings.TrimSpace(key), "#$/.")
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '.' })
	if len(segments) > 1 && strings.EqualFold(segments[0], "body") {
		segments = segments[1:]
	}
	if len(segments) != 1 {
		return "", false
	}
	if field, ok := model.FieldForPayloadKey(segments[0]); ok {
		return field, true
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if _, dup := seen[message]; dup {
			continue
		}
		seen[message] = struct{}{}
		out = append(out, message)
	}
	return out
}
