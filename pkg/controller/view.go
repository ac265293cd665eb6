package controller

import (
	"context"

	"github.com/goliatone/go-movieform/pkg/model"
)

// View is the UI surface driven by the controller. Implementations do not
// need to be safe for concurrent use; the controller serialises calls.
type View interface {
	SetRatingLabel(text string)
	ShowLoading(visible bool)
	ClearResults()
	ShowResults()
	RenderCards(cards []model.Card)
	RenderEmpty(message string)
	RenderError(message string)
	RenderValidation(fields map[string][]string)
	ScrollToResults()
}

// Recommender fetches recommendations for a query. client.Client satisfies
// it.
type Recommender interface {
	Recommend(ctx context.Context, query model.Query) (model.Response, error)
}

// RecommenderFunc adapts a function to the Recommender interface.
type RecommenderFunc func(ctx context.Context, query model.Query) (model.Response, error)

// Recommend calls f.
func (f RecommenderFunc) Recommend(ctx context.Context, query model.Query) (model.Response, error) {
	return f(ctx, query)
}

// Tee returns a View that forwards every update to each of views in order.
// Nil views are skipped.
func Tee(views ...View) View {
	out := make(teeView, 0, len(views))
	for _, view := range views {
		if view != nil {
			out = append(out, view)
		}
	}
	return out
}

type teeView []View

func (t teeView) SetRatingLabel(text string) {
	for _, v := range t {
		v.SetRatingLabel(text)
	}
}

func (t teeView) ShowLoading(visible bool) {
	for _, v := range t {
		v.ShowLoading(visible)
	}
}

func (t teeView) ClearResults() {
	for _, v := range t {
		v.ClearResults()
	}
}

func (t teeView) ShowResults() {
	for _, v := range t {
		v.ShowResults()
	}
}

func (t teeView) RenderCards(cards []model.Card) {
	for _, v := range t {
		v.RenderCards(cards)
	}
}

func (t teeView) RenderEmpty(message string) {
	for _, v := range t {
		v.RenderEmpty(message)
	}
}

func (t teeView) RenderError(message string) {
	for _, v := range t {
		v.RenderError(message)
	}
}

func (t teeView) RenderValidation(fields map[string][]string) {
	for _, v := range t {
		v.RenderValidation(fields)
	}
}

func (t teeView) ScrollToResults() {
	for _, v := range t {
		v.ScrollToResults()
	}
}
