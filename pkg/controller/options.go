package controller

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-movieform/pkg/model"
)

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger. Transport failures are logged here
// and never shown to the user.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLimits overrides the bounds used by local validation.
func WithLimits(limits model.Limits) Option {
	return func(c *Controller) {
		c.limits = limits
	}
}
