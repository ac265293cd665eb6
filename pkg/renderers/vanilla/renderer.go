package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-movieform/pkg/model"
	"github.com/goliatone/go-movieform/pkg/render"
	rendertemplate "github.com/goliatone/go-movieform/pkg/render/template"
)

const (
	pageTemplate    = "templates/page.tmpl"
	resultsTemplate = "templates/results.tmpl"

	// FragmentHeader marks requests issued by the runtime script that expect
	// only the results markup.
	FragmentHeader = "X-Movieform-Fragment"
)

type Option func(*config)

type config struct {
	templateFS     fs.FS
	manifest       *theme.Manifest
	variant        string
	themeFile      string
	assetsPrefix   string
	inlineStyles   bool
	stylesheets    []string
	title          string
	intro          string
	genres         []string
	genresEndpoint string
	limits         model.Limits
}

// WithTemplatesDir loads templates from a directory on disk laid out like
// TemplatesFS (templates/page.tmpl, templates/results.tmpl, ...).
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path = strings.TrimSpace(path); path != "" {
			cfg.templateFS = os.DirFS(path)
		}
	}
}

// WithTheme selects the manifest (and optional variant) badge classes and
// CSS variables are resolved from.
func WithTheme(manifest *theme.Manifest, variant string) Option {
	return func(cfg *config) {
		cfg.manifest = manifest
		cfg.variant = variant
	}
}

// WithThemeFile loads the theme from a YAML file when the renderer is built.
func WithThemeFile(path string) Option {
	return func(cfg *config) {
		cfg.themeFile = strings.TrimSpace(path)
	}
}

// WithAssetsPrefix sets the URL prefix the embedded assets are served from.
// The runtime script and stylesheet are linked only when a prefix is set.
func WithAssetsPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetsPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithDefaultStyles inlines the embedded stylesheet into the page.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// WithStylesheet links an additional stylesheet.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithTitle overrides the page heading.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title = strings.TrimSpace(title); title != "" {
			cfg.title = title
		}
	}
}

// WithIntro places a short HTML blurb above the form. Markup outside a small
// formatting allowlist is removed.
func WithIntro(markup string) Option {
	return func(cfg *config) {
		cfg.intro = sanitizeIntro(markup)
	}
}

// WithGenres populates the genre suggestion list.
func WithGenres(genres []string) Option {
	return func(cfg *config) {
		cfg.genres = append([]string(nil), genres...)
	}
}

// WithGenresEndpoint lets the runtime script refresh genre suggestions from a
// search endpoint as the user types.
func WithGenresEndpoint(url string) Option {
	return func(cfg *config) {
		cfg.genresEndpoint = strings.TrimSpace(url)
	}
}

// WithLimits sets the numeric bounds advertised on the controls.
func WithLimits(limits model.Limits) Option {
	return func(cfg *config) {
		cfg.limits = limits
	}
}

// Renderer produces the recommendation page and results fragment as HTML.
type Renderer struct {
	templates *rendertemplate.Engine
	theme     Theme
	cfg       config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		title:      "Movie Recommendations",
		limits:     model.DefaultLimits(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	if cfg.themeFile != "" {
		manifest, variant, err := LoadThemeFile(cfg.themeFile)
		if err != nil {
			return nil, err
		}
		cfg.manifest = manifest
		if variant != "" {
			cfg.variant = variant
		}
	}
	resolved, err := ResolveTheme(cfg.manifest, cfg.variant)
	if err != nil {
		return nil, err
	}

	engine, err := rendertemplate.New(cfg.templateFS)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure templates: %w", err)
	}

	return &Renderer{templates: engine, theme: resolved, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Theme reports the resolved theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Render produces the full page: form controls prefilled from options, the
// loading indicator and the results container.
func (r *Renderer) Render(_ context.Context, snapshot render.Snapshot, options render.RenderOptions) ([]byte, error) {
	return r.execute(pageTemplate, snapshot, options)
}

// RenderFragment produces only the contents of the results list.
func (r *Renderer) RenderFragment(_ context.Context, snapshot render.Snapshot) ([]byte, error) {
	return r.execute(resultsTemplate, snapshot, render.RenderOptions{})
}

func (r *Renderer) execute(name string, snapshot render.Snapshot, options render.RenderOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.templates.Execute(&buf, name, r.buildContext(snapshot, options.Merge(snapshot))); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) buildContext(snapshot render.Snapshot, options render.RenderOptions) map[string]any {
	values := model.DefaultValues()
	for field, value := range options.Values {
		values[field] = value
	}

	fields := make(map[string]any, len(model.FieldIDs()))
	for _, field := range model.FieldIDs() {
		messages := options.Errors[field]
		fields[model.PayloadKey(field)] = map[string]any{
			"id":      field,
			"label":   model.FieldLabel(field),
			"value":   values.Get(field),
			"errors":  messages,
			"invalid": len(messages) > 0,
		}
	}

	ratingLabel := snapshot.RatingLabel
	if ratingLabel == "" {
		ratingLabel = values.Get(model.FieldMinRating)
	}

	runtimeOptions := make([]map[string]any, 0, 3)
	for _, category := range model.RuntimeOptions() {
		runtimeOptions = append(runtimeOptions, map[string]any{
			"value":    string(category),
			"label":    category.Label(),
			"selected": values.Get(model.FieldRuntime) == string(category),
		})
	}

	hidden := make([]map[string]any, 0, len(options.HiddenFields))
	for _, field := range render.SortedHiddenFields(options.HiddenFields) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	assets := map[string]any{
		"stylesheets": append([]string(nil), r.cfg.stylesheets...),
	}
	if r.cfg.inlineStyles {
		assets["inline_css"] = defaultStylesheet()
	}
	if r.cfg.assetsPrefix != "" {
		assets["stylesheets"] = append([]string{r.cfg.assetsPrefix + "/" + StylesheetName}, r.cfg.stylesheets...)
		assets["script"] = r.cfg.assetsPrefix + "/" + RuntimeScriptName
	}

	limits := r.cfg.limits
	return map[string]any{
		"title":   r.cfg.title,
		"intro":   r.cfg.intro,
		"classes": chromeClasses(),
		"ids": map[string]any{
			"form":       model.ElementForm,
			"container":  model.ElementResultsContainer,
			"list":       model.ElementResultsList,
			"loading":    model.ElementLoading,
			"rating":     model.ElementRatingLabel,
			"genre_list": model.FieldGenre + "-options",
		},
		"form": map[string]any{
			"action":       options.Action,
			"errors":       render.MergeFormErrors(options.FormErrors),
			"hidden":       hidden,
			"fragment_hdr": FragmentHeader,
		},
		"fields":          fields,
		"rating_label":    ratingLabel,
		"runtime_options": runtimeOptions,
		"genres":          r.cfg.genres,
		"genres_endpoint": r.cfg.genresEndpoint,
		"limits": map[string]any{
			"min_age":    strconv.Itoa(limits.MinAge),
			"max_age":    strconv.Itoa(limits.MaxAge),
			"min_rating": strconv.FormatFloat(limits.MinRating, 'f', -1, 64),
			"max_rating": strconv.FormatFloat(limits.MaxRating, 'f', -1, 64),
			"min_top_n":  strconv.Itoa(limits.MinTopN),
			"max_top_n":  strconv.Itoa(limits.MaxTopN),
		},
		"assets":  assets,
		"theme":   map[string]any{"name": r.theme.Name(), "variant": r.theme.Variant(), "css_vars": r.theme.cssVars()},
		"results": r.resultsContext(snapshot),
	}
}

type cardView struct {
	Name       string `json:"name"`
	Year       string `json:"year"`
	Genre      string `json:"genre"`
	Rating     string `json:"rating"`
	Badge      string `json:"badge"`
	BadgeClass string `json:"badge_class"`
	Tone       string `json:"tone"`
	Tagline    string `json:"tagline"`
}

func (r *Renderer) resultsContext(snapshot render.Snapshot) map[string]any {
	cards := make([]cardView, 0, len(snapshot.Cards))
	for _, card := range snapshot.Cards {
		cards = append(cards, cardView{
			Name:       card.Name,
			Year:       strconv.Itoa(card.Year),
			Genre:      card.Genre,
			Rating:     card.Rating,
			Badge:      card.Badge,
			BadgeClass: r.theme.BadgeClass(card.Tone),
			Tone:       string(card.Tone),
			Tagline:    card.Tagline,
		})
	}

	// Backend text is escaped by the template engine, so an error string is
	// shown exactly as received, including an empty one.
	return map[string]any{
		"state":      snapshot.State,
		"failed":     snapshot.Failed(),
		"visible":    snapshot.ResultsVisible,
		"loading":    snapshot.Loading,
		"scroll":     snapshot.Scroll,
		"cards":      cards,
		"empty":      snapshot.Empty,
		"error":      snapshot.Error,
		"validation": validationSummary(snapshot.Validation),
	}
}

// validationSummary flattens field messages in form order, prefixed with the
// field label ("Age must be a whole number").
func validationSummary(fields map[string][]string) []string {
	if len(fields) == 0 {
		return nil
	}
	var out []string
	for _, field := range model.FieldIDs() {
		for _, message := range fields[field] {
			out = append(out, model.FieldLabel(field)+" "+message)
		}
	}
	return out
}
