package vanilla_test

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-movieform/pkg/controller"
	"github.com/goliatone/go-movieform/pkg/model"
	"github.com/goliatone/go-movieform/pkg/render"
	"github.com/goliatone/go-movieform/pkg/renderers/vanilla"
	"github.com/goliatone/go-movieform/pkg/testsupport"
)

func defaultValues() model.FormValues {
	return model.FormValues{
		model.FieldGenre:     "Drama",
		model.FieldRuntime:   "long",
		model.FieldAge:       "35",
		model.FieldMinRating: "7.5",
		model.FieldTopN:      "3",
	}
}

// runSubmission drives a controller against a Recorder and returns the
// resulting snapshot.
func runSubmission(t *testing.T, resp model.Response, fetchErr error, values model.FormValues) render.Snapshot {
	t.Helper()

	recorder := render.NewRecorder(values.Get(model.FieldMinRating))
	ctrl, err := controller.New(controller.RecommenderFunc(func(context.Context, model.Query) (model.Response, error) {
		return resp, fetchErr
	}), recorder)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	_ = ctrl.Submit(testsupport.Context(), values)
	return recorder.Snapshot()
}

func renderPage(t *testing.T, renderer *vanilla.Renderer, snapshot render.Snapshot, opts render.RenderOptions) *goquery.Document {
	t.Helper()

	output, err := renderer.Render(testsupport.Context(), snapshot, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRenderer_InitialPageCarriesDOMContract(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithAssetsPrefix("/movies/assets/"), vanilla.WithGenres([]string{"Action", "Drama"}))
	doc := renderPage(t, renderer, render.NewRecorder("").Snapshot(), render.RenderOptions{Action: "/movies/"})

	for _, id := range []string{
		model.ElementForm, model.ElementRatingLabel, model.ElementResultsContainer,
		model.ElementResultsList, model.ElementLoading,
		model.FieldGenre, model.FieldRuntime, model.FieldAge, model.FieldMinRating, model.FieldTopN,
	} {
		if doc.Find("#"+id).Length() != 1 {
			t.Fatalf("expected exactly one #%s element", id)
		}
	}

	if action, _ := doc.Find("#" + model.ElementForm).Attr("action"); action != "/movies/" {
		t.Fatalf("unexpected form action %q", action)
	}
	if _, hidden := doc.Find("#" + model.ElementLoading).Attr("hidden"); !hidden {
		t.Fatalf("loading indicator should start hidden")
	}
	if _, hidden := doc.Find("#" + model.ElementResultsContainer).Attr("hidden"); !hidden {
		t.Fatalf("results container should start hidden")
	}
	if got := doc.Find("#" + model.ElementRatingLabel).Text(); got != "8.0" {
		t.Fatalf("expected default rating label 8.0, got %q", got)
	}
	if got, _ := doc.Find("#" + model.FieldRuntime + " option[selected]").Attr("value"); got != "medium" {
		t.Fatalf("expected medium runtime selected by default, got %q", got)
	}
	if doc.Find("#genre-options option").Length() != 2 {
		t.Fatalf("expected genre suggestions")
	}
	if src, _ := doc.Find("script").Attr("src"); src != "/movies/assets/movieform.js" {
		t.Fatalf("unexpected script src %q", src)
	}
	if href, _ := doc.Find("link[rel=stylesheet]").Attr("href"); href != "/movies/assets/movieform.css" {
		t.Fatalf("unexpected stylesheet href %q", href)
	}
}

func TestRenderer_RendersOneCardPerRecommendation(t *testing.T) {
	resp := testsupport.MustLoadResponse(t, filepath.Join("testdata", "response_three.json"))
	snapshot := runSubmission(t, resp, nil, defaultValues())

	doc := renderPage(t, newRenderer(t), snapshot, render.RenderOptions{Values: defaultValues()})

	cards := doc.Find("#" + model.ElementResultsList + " .movie-card")
	if cards.Length() != 3 {
		t.Fatalf("expected 3 cards, got %d", cards.Length())
	}

	type cardText struct {
		Title, Genre, Rating, Badge, BadgeClass, Tagline string
	}
	var got []cardText
	cards.Each(func(_ int, s *goquery.Selection) {
		badge := s.Find(".badge")
		class, _ := badge.Attr("class")
		got = append(got, cardText{
			Title:      strings.TrimSpace(s.Find(".card-title").Text()),
			Genre:      s.Find(".movie-genre").Text(),
			Rating:     s.Find(".movie-rating").Text(),
			Badge:      badge.Text(),
			BadgeClass: class,
			Tagline:    s.Find(".movie-tagline").Text(),
		})
	})

	want := []cardText{
		{Title: "Heat (1995)", Genre: "Crime, Drama", Rating: "★ 8.3", Badge: "Long", BadgeClass: "badge bg-danger", Tagline: "A Los Angeles crime saga"},
		{Title: "Up (2009)", Genre: "Animation", Rating: "★ 8.3", Badge: "Short", BadgeClass: "badge bg-success", Tagline: model.TaglinePlaceholder},
		{Title: "Alien <script>alert(1)</script> (1979)", Genre: "Horror", Rating: "★ 8.5", Badge: "Epic", BadgeClass: "badge bg-primary", Tagline: "In space no one can hear you scream."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cards mismatch (-want +got):\n%s", diff)
	}

	if doc.Find("#"+model.ElementResultsList+" script").Length() != 0 {
		t.Fatalf("backend markup must be escaped, not rendered")
	}
	if scroll, _ := doc.Find("#" + model.ElementResultsContainer).Attr("data-scroll"); scroll != "true" {
		t.Fatalf("expected results container marked for scrolling")
	}
	if _, hidden := doc.Find("#" + model.ElementLoading).Attr("hidden"); !hidden {
		t.Fatalf("loading indicator should be hidden after results")
	}
	if got := doc.Find("#" + model.ElementRatingLabel).Text(); got != "7.5" {
		t.Fatalf("expected rating label 7.5, got %q", got)
	}
	if got, _ := doc.Find("#" + model.FieldAge).Attr("value"); got != "35" {
		t.Fatalf("expected age prefilled, got %q", got)
	}
}

func TestRenderer_EmptyResults(t *testing.T) {
	snapshot := runSubmission(t, model.Response{Success: true}, nil, defaultValues())
	doc := renderPage(t, newRenderer(t), snapshot, render.RenderOptions{})

	list := doc.Find("#" + model.ElementResultsList)
	if list.Find(".movie-card").Length() != 0 {
		t.Fatalf("expected no cards")
	}
	if got := list.Find("p.lead").Text(); got != model.EmptyResultsMessage {
		t.Fatalf("unexpected empty message %q", got)
	}
	if _, scroll := doc.Find("#" + model.ElementResultsContainer).Attr("data-scroll"); scroll {
		t.Fatalf("empty results should not scroll")
	}
}

func TestRenderer_ServerErrorVerbatim(t *testing.T) {
	snapshot := runSubmission(t, model.Response{Success: false, Error: "Invalid genre"}, nil, defaultValues())
	doc := renderPage(t, newRenderer(t), snapshot, render.RenderOptions{})

	alert := doc.Find("#" + model.ElementResultsList + " .alert")
	if alert.Length() != 1 {
		t.Fatalf("expected one alert, got %d", alert.Length())
	}
	if got := alert.Text(); got != "Invalid genre" {
		t.Fatalf("expected verbatim error, got %q", got)
	}
	if role, _ := alert.Attr("role"); role != "alert" {
		t.Fatalf("expected role=alert")
	}
}

func TestRenderer_FragmentErrorTextIsVerbatim(t *testing.T) {
	cases := []struct {
		name    string
		message string
	}{
		{name: "empty", message: ""},
		{name: "angle brackets", message: "Unknown genre <Westerns>"},
		{name: "markup only", message: "<script>x</script>"},
		{name: "ampersand", message: "Crime & Drama not supported"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snapshot := runSubmission(t, model.Response{Success: false, Error: tc.message}, nil, defaultValues())

			output, err := newRenderer(t).RenderFragment(testsupport.Context(), snapshot)
			if err != nil {
				t.Fatalf("render fragment: %v", err)
			}
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(output))
			if err != nil {
				t.Fatalf("parse html: %v", err)
			}

			alert := doc.Find(`[role="alert"]`)
			if alert.Length() != 1 {
				t.Fatalf("expected one alert, got %d in %q", alert.Length(), output)
			}
			if got := alert.Text(); got != tc.message {
				t.Fatalf("alert text = %q, want %q", got, tc.message)
			}
			if doc.Find("script, .movie-card").Length() != 0 {
				t.Fatalf("expected only the alert, got %q", output)
			}
		})
	}
}

func TestRenderer_TransportFailureShowsGenericMessage(t *testing.T) {
	snapshot := runSubmission(t, model.Response{}, io.ErrUnexpectedEOF, defaultValues())
	doc := renderPage(t, newRenderer(t), snapshot, render.RenderOptions{})

	if got := doc.Find("#" + model.ElementResultsList + " .alert").Text(); got != model.GenericErrorMessage {
		t.Fatalf("expected generic message, got %q", got)
	}
	if _, hidden := doc.Find("#" + model.ElementLoading).Attr("hidden"); !hidden {
		t.Fatalf("loading indicator should be hidden after failure")
	}
}

func TestRenderer_ValidationErrorsInlineAndSummary(t *testing.T) {
	values := defaultValues()
	values[model.FieldAge] = "abc"
	snapshot := runSubmission(t, model.Response{Success: true}, nil, values)

	doc := renderPage(t, newRenderer(t), snapshot, render.RenderOptions{Values: values})

	if invalid, _ := doc.Find("#" + model.FieldAge).Attr("aria-invalid"); invalid != "true" {
		t.Fatalf("expected age marked invalid")
	}
	if got := doc.Find(`[data-field="age"]`).Text(); got != "must be a whole number" {
		t.Fatalf("unexpected inline message %q", got)
	}
	if got := doc.Find("[data-validation] li").Text(); got != "Age must be a whole number" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got, _ := doc.Find("#" + model.FieldAge).Attr("value"); got != "abc" {
		t.Fatalf("expected raw value to be kept, got %q", got)
	}
}

func TestRenderer_HiddenFieldsAndFormErrors(t *testing.T) {
	doc := renderPage(t, newRenderer(t), render.NewRecorder("").Snapshot(), render.RenderOptions{
		HiddenFields: render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok")),
		FormErrors:   []string{" Session expired "},
	})

	if got, _ := doc.Find(`input[type=hidden][name=_csrf]`).Attr("value"); got != "tok" {
		t.Fatalf("expected csrf token, got %q", got)
	}
	if got := doc.Find(".movieform-errors li").Text(); got != "Session expired" {
		t.Fatalf("unexpected form error %q", got)
	}
}

func TestRenderer_FragmentContainsOnlyResults(t *testing.T) {
	resp := testsupport.MustLoadResponse(t, filepath.Join("testdata", "response_three.json"))
	snapshot := runSubmission(t, resp, nil, defaultValues())

	output, err := newRenderer(t).RenderFragment(testsupport.Context(), snapshot)
	if err != nil {
		t.Fatalf("render fragment: %v", err)
	}
	if bytes.Contains(output, []byte("<form")) {
		t.Fatalf("fragment must not contain the form")
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if doc.Find(".movie-card").Length() != 3 {
		t.Fatalf("expected 3 cards in fragment")
	}
}

func TestRenderer_IntroKeepsFormattingOnly(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithIntro(`<p>Pick a <strong>genre</strong> <a href="https://example.com/help" onclick="x()">help</a></p><script>alert(1)</script>`))
	doc := renderPage(t, renderer, render.NewRecorder("").Snapshot(), render.RenderOptions{})

	intro := doc.Find(".movieform-intro")
	if intro.Find("strong").Text() != "genre" {
		t.Fatalf("expected strong text kept, got %q", intro.Text())
	}
	if href, _ := intro.Find("a").Attr("href"); href != "https://example.com/help" {
		t.Fatalf("unexpected link href %q", href)
	}
	if _, ok := intro.Find("a").Attr("onclick"); ok {
		t.Fatalf("event handlers must be removed")
	}
	if intro.Find("script").Length() != 0 {
		t.Fatalf("scripts must be removed")
	}

	plain := renderPage(t, newRenderer(t), render.NewRecorder("").Snapshot(), render.RenderOptions{})
	if plain.Find(".movieform-intro").Length() != 0 {
		t.Fatalf("intro should be omitted when not configured")
	}
}

func TestRenderer_TemplatesDirOverridesFragment(t *testing.T) {
	resp := testsupport.MustLoadResponse(t, filepath.Join("testdata", "response_three.json"))
	snapshot := runSubmission(t, resp, nil, defaultValues())

	renderer := newRenderer(t, vanilla.WithTemplatesDir(filepath.Join("testdata", "override")))
	output, err := renderer.RenderFragment(testsupport.Context(), snapshot)
	if err != nil {
		t.Fatalf("render fragment: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if got := doc.Find("p.override").Length(); got != 3 {
		t.Fatalf("expected override template output, got %q", output)
	}
}

func TestRenderer_ThemeFileOverridesBadges(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithThemeFile(filepath.Join("testdata", "theme.yaml")))
	resp := testsupport.MustLoadResponse(t, filepath.Join("testdata", "response_three.json"))
	doc := renderPage(t, renderer, runSubmission(t, resp, nil, defaultValues()), render.RenderOptions{})

	var classes []string
	doc.Find(".movie-card .badge").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		classes = append(classes, class)
	})
	want := []string{"badge text-bg-warning", "badge text-bg-success border", "badge bg-primary"}
	if diff := cmp.Diff(want, classes); diff != "" {
		t.Fatalf("badge classes mismatch (-want +got):\n%s", diff)
	}
	if variant, _ := doc.Find("body").Attr("data-theme-variant"); variant != "dark" {
		t.Fatalf("expected dark variant, got %q", variant)
	}
	style := doc.Find("head style").Text()
	if !strings.Contains(style, "--movieform-color-accent: #ffd700;") || !strings.Contains(style, "--movieform-color-muted: #adb5bd;") {
		t.Fatalf("expected css variables from theme tokens, got %q", style)
	}
}

func TestRenderer_RegistersWithRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(newRenderer(t))

	_, contentType, err := registry.Render(testsupport.Context(), "vanilla", render.NewRecorder("").Snapshot(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if contentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", contentType)
	}
}
