package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when labels are
// localised without a Translator.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to render when a key cannot be
// translated. The default returns the English fallback.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Translation keys for the detail panel labels.
const (
	LabelKeySpecies  = "fish.species"
	LabelKeyLocation = "fish.location"
	LabelKeyLength   = "fish.length"
	LabelKeyFood     = "fish.food"
	LabelKeyToggle   = "fish.toggle"
)

// Labels are the fixed captions rendered inside each record fragment.
type Labels struct {
	Species  string `json:"species"`
	Location string `json:"location"`
	Length   string `json:"length"`
	Food     string `json:"food"`
	Toggle   string `json:"toggle"`
}

// DefaultLabels returns the English captions.
func DefaultLabels() Labels {
	return Labels{
		Species:  "Species",
		Location: "Location",
		Length:   "Length",
		Food:     "Food",
		Toggle:   "Details",
	}
}

// ResolveLabels localises the captions. Without a translator the defaults
// are returned untouched.
func ResolveLabels(opts RenderOptions) Labels {
	labels := DefaultLabels()
	if opts.Translator == nil {
		return labels
	}

	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	labels.Species = translate(opts.Locale, LabelKeySpecies, labels.Species, opts.Translator, onMissing)
	labels.Location = translate(opts.Locale, LabelKeyLocation, labels.Location, opts.Translator, onMissing)
	labels.Length = translate(opts.Locale, LabelKeyLength, labels.Length, opts.Translator, onMissing)
	labels.Food = translate(opts.Locale, LabelKeyFood, labels.Food, opts.Translator, onMissing)
	labels.Toggle = translate(opts.Locale, LabelKeyToggle, labels.Toggle, opts.Translator, onMissing)
	return labels
}

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if fallback, ok := m["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
}
