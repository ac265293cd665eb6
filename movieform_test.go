package movieform_test

import (
	"context"
	"strings"
	"testing"

	movieform "github.com/goliatone/go-movieform"
	"github.com/goliatone/go-movieform/pkg/controller"
	"github.com/goliatone/go-movieform/pkg/model"
)

func TestSubmitAndRenderHTML(t *testing.T) {
	rec := controller.RecommenderFunc(func(_ context.Context, q model.Query) (model.Response, error) {
		if q.TopN != 5 || q.MinRating != 8 {
			t.Fatalf("unexpected query %#v", q)
		}
		return model.Response{Success: true, Recommendations: []model.Recommendation{
			{Name: "Amélie", Year: 2001, Genre: "Romance", Rating: 8.3, RuntimeCategory: model.RuntimeMedium},
		}}, nil
	})

	snapshot, err := movieform.Submit(context.Background(), rec, model.DefaultValues())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(snapshot.Cards) != 1 || !snapshot.Scroll || snapshot.RatingLabel != "8.0" {
		t.Fatalf("unexpected snapshot %#v", snapshot)
	}

	html, err := movieform.RenderHTML(context.Background(), snapshot, movieform.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "Amélie") {
		t.Fatalf("expected card in page")
	}
}

func TestSubmitReportsValidation(t *testing.T) {
	values := model.DefaultValues()
	values[model.FieldTopN] = "0"

	snapshot, err := movieform.Submit(context.Background(), controller.RecommenderFunc(func(context.Context, model.Query) (model.Response, error) {
		t.Fatalf("recommender must not be called")
		return model.Response{}, nil
	}), values)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if len(snapshot.Validation[model.FieldTopN]) != 1 || snapshot.Loading {
		t.Fatalf("unexpected snapshot %#v", snapshot)
	}
}
