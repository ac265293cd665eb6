package model

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Limits bounds the numeric inputs accepted by ParseQuery.
type Limits struct {
	MinAge    int
	MaxAge    int
	MinRating float64
	MaxRating float64
	MinTopN   int
	MaxTopN   int
}

// DefaultLimits mirrors the ranges of the form controls.
func DefaultLimits() Limits {
	return Limits{
		MinAge:    1,
		MaxAge:    120,
		MinRating: 0,
		MaxRating: 10,
		MinTopN:   1,
		MaxTopN:   50,
	}
}

// ValidationError reports every field that failed coercion or range checks,
// keyed by field identifier.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "model: invalid query"
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], ", "))
	}
	return "model: invalid query: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// ParseQuery coerces raw form values into a Query using DefaultLimits.
func ParseQuery(values FormValues) (Query, error) {
	return ParseQueryWithLimits(values, DefaultLimits())
}

// ParseQueryWithLimits coerces age and top N to integers and the minimum
// rating to a float. Genre and runtime are passed through untouched. Any
// malformed, non-finite or out-of-range number yields a *ValidationError and a
// zero Query.
func ParseQueryWithLimits(values FormValues, limits Limits) (Query, error) {
	verr := &ValidationError{}

	query := Query{
		Genre:   values.Get(FieldGenre),
		Runtime: values.Get(FieldRuntime),
	}

	query.Age = parseBoundedInt(verr, FieldAge, values.Get(FieldAge), limits.MinAge, limits.MaxAge)
	query.TopN = parseBoundedInt(verr, FieldTopN, values.Get(FieldTopN), limits.MinTopN, limits.MaxTopN)

	query.MinRating = parseRating(verr, values.Get(FieldMinRating), limits)

	if len(verr.Fields) > 0 {
		return Query{}, verr
	}
	return query, nil
}

// ValidateField applies the ParseQueryWithLimits rules to a single raw value.
// Genre, runtime and unknown fields always pass.
func ValidateField(field, raw string, limits Limits) error {
	verr := &ValidationError{}
	switch field {
	case FieldAge:
		parseBoundedInt(verr, field, raw, limits.MinAge, limits.MaxAge)
	case FieldTopN:
		parseBoundedInt(verr, field, raw, limits.MinTopN, limits.MaxTopN)
	case FieldMinRating:
		parseRating(verr, raw, limits)
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func parseRating(verr *ValidationError, raw string, limits Limits) float64 {
	raw = strings.TrimSpace(raw)
	rating, err := strconv.ParseFloat(raw, 64)
	switch {
	case raw == "":
		verr.add(FieldMinRating, "is required")
	case err != nil, math.IsNaN(rating), math.IsInf(rating, 0):
		verr.add(FieldMinRating, "must be a number")
	case rating < limits.MinRating || rating > limits.MaxRating:
		verr.add(FieldMinRating, "must be between "+formatFloat(limits.MinRating)+" and "+formatFloat(limits.MaxRating))
	default:
		return rating
	}
	return 0
}

func parseBoundedInt(verr *ValidationError, field, raw string, min, max int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr.add(field, "is required")
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		verr.add(field, "must be a whole number")
		return 0
	}
	if value < min || value > max {
		verr.add(field, "must be between "+formatInt(min)+" and "+formatInt(max))
		return 0
	}
	return value
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
