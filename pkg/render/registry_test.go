package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-movieform/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }

func (s stubRenderer) Render(_ context.Context, snap render.Snapshot, _ render.RenderOptions) ([]byte, error) {
	return []byte(s.name + ":" + snap.State), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla"})
	registry.MustRegister(stubRenderer{name: "tui"})

	if err := registry.Register(stubRenderer{name: "tui"}); err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatalf("expected error for unnamed renderer")
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("vanilla") || registry.Has("preact") {
		t.Fatalf("unexpected Has results")
	}

	out, contentType, err := registry.Render(context.Background(), "vanilla", render.Snapshot{State: "idle"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "vanilla:idle" || contentType != "text/plain" {
		t.Fatalf("unexpected render output %q (%s)", out, contentType)
	}

	if _, _, err := registry.Render(context.Background(), "missing", render.Snapshot{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for missing renderer")
	}
}
