// Package movieform is the top-level entry point of the movie recommendation
// form: it re-exports the core types and offers one-call helpers for the
// common wiring.
package movieform

import (
	"context"

	"github.com/goliatone/go-movieform/pkg/client"
	"github.com/goliatone/go-movieform/pkg/controller"
	"github.com/goliatone/go-movieform/pkg/model"
	"github.com/goliatone/go-movieform/pkg/render"
	"github.com/goliatone/go-movieform/pkg/renderers/vanilla"
)

// Query is the request payload sent to the recommendation service.
type Query = model.Query

// Response is the recommendation service envelope.
type Response = model.Response

// FormValues holds raw control values keyed by field identifier.
type FormValues = model.FormValues

// Snapshot is the visible state of the form after a submission.
type Snapshot = render.Snapshot

// RenderOptions describes per-request overrides for renderers.
type RenderOptions = render.RenderOptions

// Controller runs form submissions against a View.
type Controller = controller.Controller

// NewClient exposes the recommendation client constructor.
func NewClient(baseURL string, options ...client.Option) *client.Client {
	return client.New(baseURL, options...)
}

// NewController exposes the controller constructor.
func NewController(recommender controller.Recommender, view controller.View, options ...controller.Option) (*Controller, error) {
	return controller.New(recommender, view, options...)
}

// Submit runs a single submission of values against recommender and returns
// the resulting snapshot. Validation and transport failures are part of the
// snapshot; the returned error is the one reported by Controller.Submit.
func Submit(ctx context.Context, recommender controller.Recommender, values FormValues, options ...controller.Option) (Snapshot, error) {
	recorder := render.NewRecorder(values.Get(model.FieldMinRating))
	ctrl, err := controller.New(recommender, recorder, options...)
	if err != nil {
		return Snapshot{}, err
	}
	err = ctrl.Submit(ctx, values)
	return recorder.Snapshot(), err
}

// RenderHTML renders a snapshot as a full page with the vanilla renderer.
func RenderHTML(ctx context.Context, snapshot Snapshot, renderOptions RenderOptions, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, snapshot, renderOptions)
}
