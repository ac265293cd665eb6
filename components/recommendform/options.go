package recommendform

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-movieform/pkg/controller"
	"github.com/goliatone/go-movieform/pkg/model"
	"github.com/goliatone/go-movieform/pkg/renderers/vanilla"
)

// GuardFunc may reject a request before it is served. Returning an HTTPError
// selects the response status.
type GuardFunc func(r *http.Request) error

// HiddenFieldsFunc returns hidden inputs (a CSRF token, say) for a page
// response. It runs before the response header is written, so it may set
// cookies on w.
type HiddenFieldsFunc func(w http.ResponseWriter, r *http.Request) map[string]string

// Options configures the form handler and routes.
type Options struct {
	RoutePath  string
	AssetsPath string
	// Action is the URL the form posts to. RegisterRoutes fills it with the
	// mounted route when empty.
	Action string
	// AssetsPrefix is the URL the renderer links assets from. RegisterRoutes
	// fills it with the mounted assets route when empty.
	AssetsPrefix   string
	GenresEndpoint string
	Genres         []string

	Recommender     controller.Recommender
	Renderer        *vanilla.Renderer
	RendererOptions []vanilla.Option
	Limits          model.Limits
	Logger          zerolog.Logger
	Guard           GuardFunc
	HiddenFields    HiddenFieldsFunc
	MaxFormBytes    int64
}

type OptionFn func(*Options)

const (
	defaultRoutePath    = "/"
	defaultAssetsPath   = "/assets/"
	defaultMaxFormBytes = 64 << 10
)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		AssetsPath:   defaultAssetsPath,
		Limits:       model.DefaultLimits(),
		Logger:       zerolog.Nop(),
		MaxFormBytes: defaultMaxFormBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.AssetsPath == "" {
		opts.AssetsPath = defaultAssetsPath
	}
	if opts.MaxFormBytes <= 0 {
		opts.MaxFormBytes = defaultMaxFormBytes
	}
	if opts.Limits == (model.Limits{}) {
		opts.Limits = model.DefaultLimits()
	}
	if opts.Genres != nil {
		opts.Genres = append([]string{}, opts.Genres...)
	}
	if opts.RendererOptions != nil {
		opts.RendererOptions = append([]vanilla.Option{}, opts.RendererOptions...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithAssetsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetsPath = path
	}
}

func WithAction(action string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Action = action
	}
}

func WithAssetsPrefix(prefix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AssetsPrefix = prefix
	}
}

// WithGenresEndpoint points the runtime script at a genre suggestion handler.
func WithGenresEndpoint(url string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.GenresEndpoint = url
	}
}

// WithGenres sets the static genre suggestions rendered into the page.
func WithGenres(genres []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Genres = append([]string{}, genres...)
	}
}

func WithRecommender(recommender controller.Recommender) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Recommender = recommender
	}
}

// WithRenderer supplies a pre-built renderer. RendererOptions and the asset
// and genre settings are ignored when set.
func WithRenderer(renderer *vanilla.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

// WithRendererOptions appends options used when the handler builds its
// renderer.
func WithRendererOptions(options ...vanilla.Option) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RendererOptions = append(o.RendererOptions, options...)
	}
}

func WithLimits(limits model.Limits) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Limits = limits
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithHiddenFields(fn HiddenFieldsFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HiddenFields = fn
	}
}

func WithMaxFormBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxFormBytes = limit
	}
}
