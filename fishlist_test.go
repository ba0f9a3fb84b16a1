package fishlist

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-fishlist/pkg/document"
	"github.com/goliatone/go-fishlist/pkg/source"
	"github.com/goliatone/go-fishlist/pkg/testsupport"
)

func TestRenderHTML_ReferenceRecord(t *testing.T) {
	out, err := RenderHTML(context.Background(), source.Static(Collection{testsupport.Bubbles()}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Species: Goldfish", "Location: Tank 1", "Length: 2in", "Food: flakes,algae", `id="btn-Bubbles"`, `id="info-Bubbles"`} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}
}

func TestAppendHTML_MissingRecord(t *testing.T) {
	var buf bytes.Buffer
	err := AppendHTML(context.Background(), source.Static(Collection{nil}), document.NewWriterTarget(&buf))
	if !errors.Is(err, ErrMissingRecord) {
		t.Fatalf("expected ErrMissingRecord, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}

func TestNewFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fish.json")
	if err := os.WriteFile(path, []byte(`{"fish":[{"name":"Nemo","food":["pellets"]}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	provider, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	out, err := RenderHTML(context.Background(), provider)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "Food: pellets") {
		t.Fatalf("unexpected output\n%s", out)
	}
}

func TestEmbeddedBundles(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/fish.tmpl"); err != nil {
		t.Fatalf("expected fish template: %v", err)
	}
	data, err := fs.ReadFile(AssetsFS(), "fishlist-toggle.js")
	if err != nil {
		t.Fatalf("expected toggle script: %v", err)
	}
	if !strings.Contains(string(data), "aria-expanded") {
		t.Fatalf("toggle script should manage aria-expanded")
	}
}
