package model

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// User-facing messages shared by every front end.
const (
	EmptyResultsMessage = "No movies found matching your criteria. Try adjusting your preferences."
	GenericErrorMessage = "An error occurred while fetching recommendations. Please try again."
	TaglinePlaceholder  = "No tagline available"
)

// Tone is the colour family of a runtime badge.
type Tone string

const (
	ToneFavorable   Tone = "favorable"
	ToneUnfavorable Tone = "unfavorable"
	ToneNeutral     Tone = "neutral"
)

// Tone maps short runtimes to favourable, long ones to unfavourable and
// everything else (medium and unknown categories) to neutral.
func (c RuntimeCategory) Tone() Tone {
	switch c {
	case RuntimeShort:
		return ToneFavorable
	case RuntimeLong:
		return ToneUnfavorable
	default:
		return ToneNeutral
	}
}

// Label is the capitalised category used as badge text.
func (c RuntimeCategory) Label() string {
	return Capitalize(string(c))
}

// Capitalize upper-cases the first character and leaves the rest unchanged.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatRating renders the rating with a star prefix and one decimal place.
// The stored binary value is what gets rounded, so 8.45 (slightly below the
// half) gives 8.4. Exact ties such as 7.25 round away from zero.
func FormatRating(rating float64) string {
	if q := rating * 4; q == math.Trunc(q) && math.Mod(q, 2) != 0 {
		rating = math.Round(rating*10) / 10
	}
	return "★ " + strconv.FormatFloat(rating, 'f', 1, 64)
}

// TaglineOrPlaceholder returns the tagline, or the placeholder when absent.
func (r Recommendation) TaglineOrPlaceholder() string {
	if r.Tagline == "" {
		return TaglinePlaceholder
	}
	return r.Tagline
}

// Card is the presentation form of a Recommendation, shared by the HTML and
// terminal renderers.
type Card struct {
	Name    string `json:"name"`
	Year    int    `json:"year"`
	Genre   string `json:"genre"`
	Rating  string `json:"rating"`
	Badge   string `json:"badge"`
	Tone    Tone   `json:"tone"`
	Tagline string `json:"tagline"`
}

// NewCard derives the card contents for one recommendation.
func NewCard(r Recommendation) Card {
	return Card{
		Name:    r.Name,
		Year:    r.Year,
		Genre:   r.Genre,
		Rating:  FormatRating(r.Rating),
		Badge:   r.RuntimeCategory.Label(),
		Tone:    r.RuntimeCategory.Tone(),
		Tagline: r.TaglineOrPlaceholder(),
	}
}

// Cards converts recommendations in order.
func Cards(items []Recommendation) []Card {
	if len(items) == 0 {
		return nil
	}
	out := make([]Card, 0, len(items))
	for _, item := range items {
		out = append(out, NewCard(item))
	}
	return out
}
