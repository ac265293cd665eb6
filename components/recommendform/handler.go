package recommendform

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-movieform/pkg/controller"
	"github.com/goliatone/go-movieform/pkg/model"
	"github.com/goliatone/go-movieform/pkg/render"
	"github.com/goliatone/go-movieform/pkg/renderers/vanilla"
)

// ScrollHeader is set to "true" on fragment responses when the page should
// scroll to the results.
const ScrollHeader = "X-Movieform-Scroll"

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Handler builds the form handler with default options plus any overrides.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the form handler from a pre-constructed Options
// value. A Recommender is required.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	if opts.Recommender == nil {
		return nil, errors.New("recommendform: recommender is required")
	}

	renderer := opts.Renderer
	if renderer == nil {
		built, err := vanilla.New(rendererOptions(opts)...)
		if err != nil {
			return nil, fmt.Errorf("recommendform: build renderer: %w", err)
		}
		renderer = built
	}

	return &formHandler{opts: opts, renderer: renderer}, nil
}

func rendererOptions(opts Options) []vanilla.Option {
	out := []vanilla.Option{vanilla.WithLimits(opts.Limits)}
	if opts.AssetsPrefix != "" {
		out = append(out, vanilla.WithAssetsPrefix(opts.AssetsPrefix))
	} else {
		out = append(out, vanilla.WithDefaultStyles())
	}
	if opts.GenresEndpoint != "" {
		out = append(out, vanilla.WithGenresEndpoint(opts.GenresEndpoint))
	}
	if len(opts.Genres) > 0 {
		out = append(out, vanilla.WithGenres(opts.Genres))
	}
	return append(out, opts.RendererOptions...)
}

type formHandler struct {
	opts     Options
	renderer *vanilla.Renderer
}

func (h *formHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		w.Header().Set("Allow", strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost}, ", "))
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxFormBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
	}

	// Guards see the parsed form, so token checks read r.PostForm.
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	if r.Method == http.MethodPost {
		h.submit(w, r)
		return
	}
	h.page(w, r)
}

func (h *formHandler) page(w http.ResponseWriter, r *http.Request) {
	values := model.DefaultValues()
	snapshot := render.NewRecorder(values.Get(model.FieldMinRating)).Snapshot()
	h.write(w, r, snapshot, values, false)
}

func (h *formHandler) submit(w http.ResponseWriter, r *http.Request) {
	values := model.FormValuesFromURL(r.PostForm)
	recorder := render.NewRecorder(values.Get(model.FieldMinRating))
	ctrl, err := controller.New(h.opts.Recommender, recorder,
		controller.WithLimits(h.opts.Limits),
		controller.WithLogger(h.opts.Logger),
	)
	if err != nil {
		h.opts.Logger.Error().Err(err).Msg("recommendform: build controller")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := ctrl.Submit(r.Context(), values); err != nil {
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			h.opts.Logger.Warn().Err(err).Str("path", r.URL.Path).Msg("recommendation request failed")
		}
	}

	h.write(w, r, recorder.Snapshot(), values, isFragment(r))
}

func (h *formHandler) write(w http.ResponseWriter, r *http.Request, snapshot render.Snapshot, values model.FormValues, fragment bool) {
	var (
		body []byte
		err  error
	)
	if fragment {
		body, err = h.renderer.RenderFragment(r.Context(), snapshot)
	} else {
		options := render.RenderOptions{Action: h.opts.Action, Values: values}
		if h.opts.HiddenFields != nil {
			options.HiddenFields = h.opts.HiddenFields(w, r)
		}
		body, err = h.renderer.Render(r.Context(), snapshot, options)
	}
	if err != nil {
		h.opts.Logger.Error().Err(err).Msg("recommendform: render")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", h.renderer.ContentType())
	if fragment && snapshot.Scroll {
		w.Header().Set(ScrollHeader, "true")
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func isFragment(r *http.Request) bool {
	return strings.TrimSpace(r.Header.Get(vanilla.FragmentHeader)) != ""
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
