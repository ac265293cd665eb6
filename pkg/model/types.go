package model

// RuntimeCategory is the server-assigned duration class of a movie.
type RuntimeCategory string

const (
	RuntimeShort  RuntimeCategory = "short"
	RuntimeMedium RuntimeCategory = "medium"
	RuntimeLong   RuntimeCategory = "long"
)

// Query is the filter payload posted to the recommendation endpoint. Field
// order matches the wire format: genre, runtime, age, min_rating, top_n.
type Query struct {
	Genre     string  `json:"genre"`
	Runtime   string  `json:"runtime"`
	Age       int     `json:"age"`
	MinRating float64 `json:"min_rating"`
	TopN      int     `json:"top_n"`
}

// Recommendation is one movie record returned by the backend.
type Recommendation struct {
	Name            string          `json:"name"`
	Year            int             `json:"year"`
	Genre           string          `json:"genre"`
	Rating          float64         `json:"rating"`
	Tagline         string          `json:"tagline,omitempty"`
	RuntimeCategory RuntimeCategory `json:"runtime_category"`
}

// Response is the envelope returned by the recommendation endpoint. Success
// responses carry Recommendations; failures carry Error.
type Response struct {
	Success         bool             `json:"success"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Error           string           `json:"error,omitempty"`
}
