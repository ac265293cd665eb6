package template_test

import (
	"bytes"
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	rendertemplate "github.com/goliatone/go-movieform/pkg/render/template"
	"github.com/goliatone/go-movieform/pkg/testsupport"
)

//go:embed testdata/templates
var embeddedTemplates embed.FS

func newEngine(t *testing.T) *rendertemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := rendertemplate.New(templatesFS, rendertemplate.WithExtension("tpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func render(t *testing.T, engine *rendertemplate.Engine, name string, data map[string]any) string {
	t.Helper()

	var buf bytes.Buffer
	if err := engine.Execute(&buf, name, data); err != nil {
		t.Fatalf("execute %s: %v", name, err)
	}
	return buf.String()
}

func TestEngine_ExecuteAppendsExtension(t *testing.T) {
	got := render(t, newEngine(t), "hello", map[string]any{"name": "Ada"})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if got != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_IncludesResolveRelativeToParent(t *testing.T) {
	type item struct {
		Label string `json:"label"`
	}
	got := render(t, newEngine(t), "layout/card.tpl", map[string]any{
		"item": item{Label: "Alien"},
		"year": "1979",
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "card.golden"))
	if got != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, got)
	}
}

func TestEngine_EscapesValues(t *testing.T) {
	got := render(t, newEngine(t), "hello", map[string]any{"name": "<b>Ada</b>"})

	if strings.Contains(got, "<b>") {
		t.Fatalf("expected markup escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;b&gt;Ada&lt;/b&gt;") {
		t.Fatalf("expected escaped name, got %q", got)
	}
}

func TestEngine_MissingTemplateWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	err := newEngine(t).Execute(&buf, "missing", nil)
	if err == nil {
		t.Fatalf("expected error for missing template")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestEngine_RequiresFilesystem(t *testing.T) {
	if _, err := rendertemplate.New(nil); err == nil {
		t.Fatalf("expected error without filesystem")
	}
}
