// Package genres holds the movie genre vocabulary and completes partially
// typed genre lists for the recommendation form.
//
// Input is a comma separated list. Finished segments are resolved against the
// vocabulary and never suggested again; the segment after the last comma is
// searched by prefix, then substring, then fuzzy subsequence. Suggestion values
// repeat the finished segments so a datalist option can replace the whole
// input. Component serves the same completion as JSON on GET and HEAD.
package genres
