package pongo_test

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-fishlist/pkg/render/template/pongo"
	"github.com/goliatone/go-fishlist/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))

	for _, name := range []string{"hello", "hello.tpl"} {
		result, err := engine.RenderTemplate(name, map[string]any{"name": "Ada"})
		if err != nil {
			t.Fatalf("render %s: %v", name, err)
		}
		if result != want {
			t.Fatalf("render %s mismatch\nwant: %q\n got: %q", name, want, result)
		}
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("nope", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("escape", map[string]any{"name": "<Nemo>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "<b>&lt;Nemo&gt;</b>" {
		t.Fatalf("expected autoescaped output, got %q", result)
	}
}

func TestRegisterFilter(t *testing.T) {
	err := pongo.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := pongo.RegisterFilter("shout", func(any, any) (any, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate filter error")
	}
	if err := pongo.RegisterFilter(" ", nil); err == nil {
		t.Fatalf("expected error for blank filter")
	}

	result, err := newEngine(t).RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestEngine_JoinListFilterKeepsOrder(t *testing.T) {
	result, err := newEngine(t).RenderTemplate("use-joinlist", map[string]any{
		"food": []string{"flakes", "algae"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-joinlist.golden"))
	if result != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestNew_RequiresFS(t *testing.T) {
	if _, err := pongo.New(nil); err == nil {
		t.Fatalf("expected error without template fs")
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := pongo.New(templatesFS, pongo.WithSetName("test"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
