package genres

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Component serves genre completions over HTTP and to prompt completers.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Genres returns the configured genre list, or the embedded one.
func (c *Component) Genres() ([]string, error) {
	if c != nil && c.opts.Genres != nil {
		return append([]string{}, c.opts.Genres...), nil
	}
	return DefaultGenres()
}

// Suggest returns completion values for a partially typed genre input, in
// the shape expected by prompt completers.
func (c *Component) Suggest(input string) []string {
	opts := c.Options()
	genres, err := c.Genres()
	if err != nil {
		return nil
	}
	options := SearchOptions(genres, input, opts.Limit, opts)
	out := make([]string, 0, len(options))
	for _, option := range options {
		out = append(out, option.Value)
	}
	return out
}

// ServeHTTP answers GET and HEAD with a JSON Completion for the q parameter.
// The optional limit parameter is clamped to MaxLimit.
func (c *Component) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	opts := c.Options()
	if opts.Guard != nil {
		if err := opts.Guard(r); err != nil {
			code := guardStatus(err)
			http.Error(w, http.StatusText(code), code)
			return
		}
	}

	genres, err := c.Genres()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get(limitParam))
	completion := Complete(genres, query.Get(queryParam), limit, opts)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(completion)
}

// Register mounts the component under basePath and returns the pattern used.
func (c *Component) Register(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("genres: missing mux")
	}
	pattern := MountPath(basePath, func(o *Options) { o.RoutePath = c.Options().RoutePath })
	mux.Handle(pattern, c)
	return pattern, nil
}

// RegisterRoutes builds a component from fns and mounts it under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return New(fns...).Register(mux, basePath)
}

// MountPath returns the route the component answers on under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(opts.RoutePath))
}

func guardStatus(err error) int {
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) && coded.StatusCode() > 0 {
		return coded.StatusCode()
	}
	return http.StatusForbidden
}
