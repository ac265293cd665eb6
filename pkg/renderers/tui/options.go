package tui

import (
	"io"

	"github.com/goliatone/go-movieform/pkg/model"
)

// Theme captures optional message prefixes applied when printing. Keep
// minimal to avoid coupling output logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// SpinnerFunc starts a loading indicator on w and returns the function that
// stops it.
type SpinnerFunc func(w io.Writer, message string) (stop func())

// Option configures the prompter, view and renderer of this package.
type Option func(*config)

type config struct {
	driver   PromptDriver
	out      io.Writer
	theme    Theme
	suggest  func(string) []string
	limits   model.Limits
	defaults model.FormValues
	onRating func(string)
	spinner  SpinnerFunc
}

// WithPromptDriver overrides the prompt driver used by the prompter.
func WithPromptDriver(driver PromptDriver) Option {
	return func(cfg *config) {
		if driver != nil {
			cfg.driver = driver
		}
	}
}

// WithOutput sets where the view prints. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(cfg *config) {
		if w != nil {
			cfg.out = w
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(cfg *config) {
		cfg.theme = theme
	}
}

// WithGenreSuggestions completes the genre prompt with the given lookup.
func WithGenreSuggestions(fn func(query string) []string) Option {
	return func(cfg *config) {
		cfg.suggest = fn
	}
}

// WithLimits sets the bounds the numeric prompts enforce.
func WithLimits(limits model.Limits) Option {
	return func(cfg *config) {
		cfg.limits = limits
	}
}

// WithDefaults pre-populates prompts, typically with the previous answers.
func WithDefaults(values model.FormValues) Option {
	return func(cfg *config) {
		cfg.defaults = values.Clone()
	}
}

// WithRatingListener is called with every accepted minimum rating answer,
// mirroring the slider label sync of the web form.
func WithRatingListener(fn func(value string)) Option {
	return func(cfg *config) {
		cfg.onRating = fn
	}
}

// WithSpinner replaces the loading indicator.
func WithSpinner(fn SpinnerFunc) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.spinner = fn
		}
	}
}

func newConfig(options []Option) config {
	cfg := config{
		limits:   model.DefaultLimits(),
		defaults: model.DefaultValues(),
		spinner:  ptermSpinner,
		theme:    Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
