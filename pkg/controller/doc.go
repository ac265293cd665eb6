// Package controller implements the recommendation form controller: it
// mirrors the rating slider into its label and runs form submissions against
// a Recommender, driving an injected View through the loading, results and
// error states.
//
// Submissions are numbered. Starting a new one cancels the request of the
// previous submission, and a response is applied to the view only while its
// submission is still the latest.
package controller
