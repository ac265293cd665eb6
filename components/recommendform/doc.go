// Package recommendform serves the movie recommendation form over net/http.
//
// GET renders the page with the initial control values. POST reads the form,
// runs one controller submission against the configured Recommender and
// renders the outcome. Requests carrying the vanilla fragment header receive
// only the results markup, with X-Movieform-Scroll set when the page should
// scroll to the results. The embedded stylesheet and runtime script are served
// under the assets route.
package recommendform
