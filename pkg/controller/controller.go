package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-movieform/pkg/contract"
	"github.com/goliatone/go-movieform/pkg/model"
	"github.com/goliatone/go-movieform/pkg/render"
)

// ErrSuperseded is returned by Submit when a newer submission started before
// the response arrived. The view is left untouched.
var ErrSuperseded = errors.New("controller: submission superseded")

// Controller coordinates the form, the recommender and the view.
type Controller struct {
	recommender Recommender
	view        View
	logger      zerolog.Logger
	limits      model.Limits

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      State
}

// New builds a Controller around the given recommender and view.
func New(recommender Recommender, view View, options ...Option) (*Controller, error) {
	if recommender == nil {
		return nil, errors.New("controller: recommender is required")
	}
	if view == nil {
		return nil, errors.New("controller: view is required")
	}
	c := &Controller{
		recommender: recommender,
		view:        view,
		logger:      zerolog.Nop(),
		limits:      model.DefaultLimits(),
		state:       StateIdle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation reports the number of the latest submission.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SyncRating mirrors the slider value into the rating label as-is.
func (c *Controller) SyncRating(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.SetRatingLabel(value)
}

// Submit runs one form submission.
//
// It returns nil once the response has been rendered, whether it carried
// recommendations or an application error. A *model.ValidationError is
// returned when the values are rejected locally and no request is sent. A
// request the contract rejects is rendered as field validation too.
// Transport failures are rendered with the generic message and returned
// wrapped. ErrSuperseded is returned when a newer submission took over.
func (c *Controller) Submit(ctx context.Context, values model.FormValues) error {
	gen, reqCtx := c.begin(ctx)

	query, err := model.ParseQueryWithLimits(values, c.limits)
	if err != nil {
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			return fmt.Errorf("controller: parse values: %w", err)
		}
		applied := c.finish(gen, func() {
			c.view.ShowLoading(false)
			c.view.RenderValidation(verr.Fields)
			c.state = StateDisplayingError
		})
		if !applied {
			return ErrSuperseded
		}
		c.logger.Debug().Uint64("generation", gen).Err(err).Msg("submission rejected locally")
		return err
	}

	resp, err := c.recommender.Recommend(reqCtx, query)
	if fields := rejectedFields(err); len(fields) > 0 {
		applied := c.finish(gen, func() {
			c.view.ShowLoading(false)
			c.view.RenderValidation(fields)
			c.state = StateDisplayingError
		})
		if !applied {
			return ErrSuperseded
		}
		c.logger.Warn().Uint64("generation", gen).Err(err).Msg("request rejected by contract")
		return fmt.Errorf("controller: request rejected: %w", err)
	}
	if err != nil {
		applied := c.finish(gen, func() {
			c.view.ShowLoading(false)
			c.view.RenderError(model.GenericErrorMessage)
			c.state = StateDisplayingError
		})
		if !applied {
			return ErrSuperseded
		}
		c.logger.Error().Uint64("generation", gen).Err(err).Msg("fetch recommendations failed")
		return fmt.Errorf("controller: fetch recommendations: %w", err)
	}

	applied := c.finish(gen, func() {
		c.view.ShowLoading(false)
		c.apply(resp)
	})
	if !applied {
		return ErrSuperseded
	}
	c.logger.Debug().
		Uint64("generation", gen).
		Bool("success", resp.Success).
		Int("count", len(resp.Recommendations)).
		Msg("submission rendered")
	return nil
}

// begin starts a new generation: it cancels the previous request, resets the
// view and returns the context the new request runs under.
func (c *Controller) begin(ctx context.Context) (uint64, context.Context) {
	reqCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	c.cancel = cancel
	c.state = StateLoading

	c.view.ShowLoading(true)
	c.view.ClearResults()
	c.view.ShowResults()
	return c.generation, reqCtx
}

// finish runs update while gen is still current and reports whether it did.
func (c *Controller) finish(gen uint64, update func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	update()
	return true
}

// rejectedFields returns the form fields a contract check of the outgoing
// request found fault with. Violations that cannot be tied to a field, and
// response violations, yield nil so the generic message is shown instead.
func rejectedFields(err error) map[string][]string {
	var verr *contract.ValidationError
	if !errors.As(err, &verr) || verr.Kind != contract.KindRequest {
		return nil
	}
	return render.MapErrorPayload(verr.Payload()).Fields
}

// apply renders a decoded response. Callers hold c.mu.
func (c *Controller) apply(resp model.Response) {
	if !resp.Success {
		c.view.RenderError(resp.Error)
		c.state = StateDisplayingError
		return
	}
	c.state = StateDisplayingResults
	if len(resp.Recommendations) == 0 {
		c.view.RenderEmpty(model.EmptyResultsMessage)
		return
	}
	c.view.RenderCards(model.Cards(resp.Recommendations))
	c.view.ScrollToResults()
}
