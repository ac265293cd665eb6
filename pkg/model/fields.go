package model

import (
	"net/url"
	"strings"
)

// Input field identifiers. They double as HTML element ids and form input
// names, and as keys of FormValues.
const (
	FieldGenre     = "genre"
	FieldRuntime   = "runtime"
	FieldAge       = "age"
	FieldMinRating = "min-rating"
	FieldTopN      = "top-n"
)

// Element identifiers for the non-input parts of the page.
const (
	ElementRatingLabel      = "rating-value"
	ElementForm             = "recommendation-form"
	ElementResultsContainer = "recommendations-container"
	ElementResultsList      = "recommendations-list"
	ElementLoading          = "loading"
)

var fieldOrder = []string{FieldGenre, FieldRuntime, FieldAge, FieldMinRating, FieldTopN}

var payloadKeys = map[string]string{
	FieldGenre:     "genre",
	FieldRuntime:   "runtime",
	FieldAge:       "age",
	FieldMinRating: "min_rating",
	FieldTopN:      "top_n",
}

var fieldLabels = map[string]string{
	FieldGenre:     "Genre",
	FieldRuntime:   "Runtime",
	FieldAge:       "Age",
	FieldMinRating: "Minimum rating",
	FieldTopN:      "Number of results",
}

// FieldLabel returns the human label of a field, or the identifier itself for
// unknown fields.
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// FieldIDs returns the input field identifiers in form order.
func FieldIDs() []string {
	return append([]string(nil), fieldOrder...)
}

// PayloadKey returns the JSON key used for the field in the request body, or
// an empty string for unknown fields.
func PayloadKey(field string) string {
	return payloadKeys[field]
}

// FieldForPayloadKey maps a JSON body key (or a field identifier) back to the
// field identifier.
func FieldForPayloadKey(key string) (string, bool) {
	key = strings.TrimSpace(key)
	for field, payload := range payloadKeys {
		if key == payload || key == field {
			return field, true
		}
	}
	return "", false
}

// FormValues holds raw control values keyed by field identifier, exactly as
// read from the form before any coercion.
type FormValues map[string]string

// Get returns the raw value for the field.
func (v FormValues) Get(field string) string {
	if v == nil {
		return ""
	}
	return v[field]
}

// Clone returns a copy safe to mutate.
func (v FormValues) Clone() FormValues {
	if v == nil {
		return nil
	}
	out := make(FormValues, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// FormValuesFromURL extracts the known fields from a parsed urlencoded form.
// Unknown keys are ignored; missing keys stay absent.
func FormValuesFromURL(form url.Values) FormValues {
	out := make(FormValues, len(fieldOrder))
	for _, field := range fieldOrder {
		if values, ok := form[field]; ok && len(values) > 0 {
			out[field] = values[0]
		}
	}
	return out
}

// Values converts the query back into raw form values, used to prefill
// controls after a submission.
func (q Query) Values() FormValues {
	return FormValues{
		FieldGenre:     q.Genre,
		FieldRuntime:   q.Runtime,
		FieldAge:       formatInt(q.Age),
		FieldMinRating: formatFloat(q.MinRating),
		FieldTopN:      formatInt(q.TopN),
	}
}

// DefaultValues are the initial control values of a fresh form.
func DefaultValues() FormValues {
	return FormValues{
		FieldGenre:     "",
		FieldRuntime:   string(RuntimeMedium),
		FieldAge:       "18",
		FieldMinRating: "8.0",
		FieldTopN:      "5",
	}
}

// RuntimeOptions lists the runtime categories offered by selection controls.
func RuntimeOptions() []RuntimeCategory {
	return []RuntimeCategory{RuntimeShort, RuntimeMedium, RuntimeLong}
}
