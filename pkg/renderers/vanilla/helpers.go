package vanilla

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-fishlist/pkg/model"
	"github.com/goliatone/go-fishlist/pkg/render"
	theme "github.com/goliatone/go-theme"
)

// Templates address view fields by lower snake case keys, so views are plain
// maps rather than structs.

func fishView(fish *model.Fish, opts render.RenderOptions) map[string]any {
	food := make([]string, len(fish.Food))
	copy(food, fish.Food)
	return map[string]any{
		"key":        fish.Key(opts.KeyStrategy),
		"name":       fish.Name,
		"image":      imageSource(fish.Image),
		"species":    fish.Species,
		"location":   fish.Location,
		"size":       fish.Size.String(),
		"food":       food,
		"trigger_id": fish.TriggerID(opts.TriggerPrefix, opts.KeyStrategy),
		"detail_id":  fish.DetailID(opts.DetailPrefix, opts.KeyStrategy),
	}
}

// imageSource turns a record's image reference into a URL the fragment
// policy admits. Local paths are percent-escaped and Windows drive paths
// become file URLs. References with an unsupported scheme pass through
// unchanged so the sanitizer rejects them.
func imageSource(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if driveLetter.MatchString(ref) {
		return (&url.URL{Scheme: "file", Path: "/" + strings.ReplaceAll(ref, `\`, "/")}).String()
	}
	u, err := url.Parse(ref)
	if err == nil && u.Scheme != "" {
		return ref
	}
	if err == nil && !strings.ContainsAny(ref, " \t\n\\") {
		return ref
	}
	return (&url.URL{Path: strings.ReplaceAll(ref, `\`, "/")}).String()
}

var driveLetter = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

func labelsView(labels render.Labels) map[string]any {
	return map[string]any{
		"species":  labels.Species,
		"location": labels.Location,
		"length":   labels.Length,
		"food":     labels.Food,
		"toggle":   labels.Toggle,
	}
}

func themeView(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{"name": cfg.Theme, "variant": cfg.Variant}
}

// cssVarsDeclarations renders the theme CSS variables sorted by name so the
// page output stays deterministic.
func cssVarsDeclarations(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func themeAsset(cfg *theme.RendererConfig, key string) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return strings.TrimSpace(cfg.AssetURL(key))
}
