package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fishlist/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestResolveLabels_UsesTranslationsAndFallbacks(t *testing.T) {
	labels := render.ResolveLabels(render.RenderOptions{
		Locale: "es",
		Translator: stubTranslator{
			render.LabelKeySpecies: "Especie",
			render.LabelKeyFood:    "Comida",
		},
	})

	want := render.Labels{
		Species:  "Especie",
		Location: "Location",
		Length:   "Length",
		Food:     "Comida",
		Toggle:   "Details",
	}
	if diff := cmp.Diff(want, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveLabels_CustomMissingHandler(t *testing.T) {
	var seen []string
	labels := render.ResolveLabels(render.RenderOptions{
		Locale:     "fr",
		Translator: stubTranslator{},
		OnMissing: func(locale, key string, _ []any, err error) string {
			seen = append(seen, locale+":"+key)
			return "?" + key
		},
	})

	if labels.Species != "?fish.species" {
		t.Fatalf("expected missing handler output, got %q", labels.Species)
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 missing lookups, got %d", len(seen))
	}
}

func TestResolveLabels_NoTranslator(t *testing.T) {
	if diff := cmp.Diff(render.DefaultLabels(), render.ResolveLabels(render.RenderOptions{})); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}
