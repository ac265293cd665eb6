package genres

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadGenres_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
Drama
Action
drama

Comedy
`)

	genres, err := LoadGenres(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"Action", "Comedy", "Drama"}, genres); diff != "" {
		t.Fatalf("genres mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultGenres_ContainsCommonEntries(t *testing.T) {
	genres, err := DefaultGenres()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, expected := range []string{"Action", "Drama", "Sci-Fi", "Thriller"} {
		if !containsString(genres, expected) {
			t.Fatalf("expected genre %q to be present", expected)
		}
	}
}

func TestSearch_CaseInsensitiveContains(t *testing.T) {
	genres := []string{"Drama", "Film-Noir", "Sci-Fi"}
	opts := NewOptions(WithFuzzy(false))

	results := Search(genres, "nOiR", 10, opts)
	if diff := cmp.Diff([]string{"Film-Noir"}, results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_PrefixBeforeContainsBeforeFuzzy(t *testing.T) {
	genres := []string{"Comedy", "Romance", "Crime", "Documentary", "Romantic Comedy"}
	opts := NewOptions()

	results := Search(genres, "com", 10, opts)
	want := []string{"Comedy", "Romantic Comedy"}
	if diff := cmp.Diff(want, results[:2]); diff != "" {
		t.Fatalf("ordering mismatch (-want +got):\n%s", diff)
	}

	results = Search(genres, "dcmt", 10, opts)
	if diff := cmp.Diff([]string{"Documentary"}, results); diff != "" {
		t.Fatalf("fuzzy mismatch (-want +got):\n%s", diff)
	}

	results = Search(genres, "dcmt", 10, NewOptions(WithFuzzy(false)))
	if len(results) != 0 {
		t.Fatalf("expected no results without fuzzy matching, got %#v", results)
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	genres := []string{"a", "b", "c", "d"}
	opts := NewOptions(WithLimit(2), WithMaxLimit(3))

	if results := Search(genres, "", 0, opts); len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %#v", len(results), results)
	}
	if results := Search(genres, "", 10, opts); len(results) != 3 {
		t.Fatalf("expected limit clamped to 3, got %d: %#v", len(results), results)
	}
	if results := Search(genres, "", -1, opts); results != nil {
		t.Fatalf("expected no results for negative limit, got %#v", results)
	}
}

func TestSearchOptions_CompletesLastSegment(t *testing.T) {
	genres := []string{"Action", "Crime", "Drama"}
	opts := NewOptions(WithFuzzy(false))

	results := SearchOptions(genres, "Drama, cr", 10, opts)
	want := []Option{{Value: "Drama, Crime", Label: "Crime"}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	results = SearchOptions(genres, "drama,", 10, opts)
	want = []Option{
		{Value: "drama, Action", Label: "Action"},
		{Value: "drama, Crime", Label: "Crime"},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("picked genres should be excluded (-want +got):\n%s", diff)
	}
}

func TestComplete_ResolvesTypedGenres(t *testing.T) {
	genres := []string{"Action", "Crime", "Drama"}

	got := Complete(genres, "DRAMA, drama, Heist, act", 10, NewOptions(WithFuzzy(false)))
	want := Completion{
		Data:     []Option{{Value: "DRAMA, drama, Heist, Action", Label: "Action"}},
		Selected: []string{"Drama"},
		Unknown:  []string{"Heist"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("completion mismatch (-want +got):\n%s", diff)
	}
}

func TestComponent_Suggest(t *testing.T) {
	component := New(WithGenres([]string{"Crime", "Comedy", "Drama"}), WithFuzzy(false))

	if diff := cmp.Diff([]string{"Comedy", "Crime"}, component.Suggest("c")); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}
}

func containsString(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
