package genres

import "net/http"

const (
	queryParam = "q"
	limitParam = "limit"
)

// GuardFunc may reject a request before it is served. An error exposing
// StatusCode() int selects the response status; anything else yields 403.
type GuardFunc func(r *http.Request) error

// Options configures genre suggestions and the route serving them.
type Options struct {
	RoutePath string
	// Limit caps suggestions when the request does not ask for a count.
	Limit    int
	MaxLimit int
	// Fuzzy enables subsequence matching after prefix and substring matches.
	Fuzzy bool
	Guard GuardFunc

	// Genres replaces the embedded vocabulary when non-nil.
	Genres []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/api/genres",
		Limit:     10,
		MaxLimit:  50,
		Fuzzy:     true,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.MaxLimit < opts.Limit {
		opts.MaxLimit = opts.Limit
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/genres"
	}
	if opts.Genres != nil {
		opts.Genres = append([]string{}, opts.Genres...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) { o.RoutePath = path }
}

// WithLimit sets how many suggestions are returned by default.
func WithLimit(limit int) OptionFn {
	return func(o *Options) { o.Limit = limit }
}

// WithMaxLimit caps the limit a request may ask for.
func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

// WithFuzzy toggles fuzzy subsequence matching.
func WithFuzzy(enabled bool) OptionFn {
	return func(o *Options) { o.Fuzzy = enabled }
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) { o.Guard = guard }
}

// WithGenres replaces the embedded genre list.
func WithGenres(genres []string) OptionFn {
	return func(o *Options) {
		if genres == nil {
			o.Genres = nil
			return
		}
		o.Genres = append([]string{}, genres...)
	}
}

func clampLimit(limit int, opts Options) int {
	switch {
	case limit < 0:
		return 0
	case limit == 0:
		return opts.Limit
	case opts.MaxLimit > 0 && limit > opts.MaxLimit:
		return opts.MaxLimit
	}
	return limit
}
