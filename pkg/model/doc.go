// Package model defines the typed payloads exchanged with the recommendation
// backend (Query, Recommendation, Response), the field identifiers shared by
// every front end (the element ids of the HTML form and the prompt keys of the
// terminal flow), and the presentation helpers used to turn a recommendation
// into a card: badge tone per runtime category, first-letter capitalisation,
// one-decimal star rating, and the tagline placeholder.
//
// ParseQuery coerces raw form values into a Query and rejects malformed input
// locally with a ValidationError keyed by field identifier, so front ends can
// surface the problem next to the offending control instead of relying on the
// backend to reject it.
package model
