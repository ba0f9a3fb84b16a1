package render

import (
	"strings"

	"github.com/goliatone/go-fishlist/pkg/model"
	theme "github.com/goliatone/go-theme"
)

const (
	DefaultFoodSeparator = ","
	DefaultListID        = "fish-list"
)

// RenderOptions describe per-request data renderers use to shape their output
// without touching the records themselves.
type RenderOptions struct {
	// TriggerPrefix and DetailPrefix are concatenated with the record key to
	// build the toggle control id and the detail panel id.
	TriggerPrefix string
	DetailPrefix  string
	// KeyStrategy picks the record field used as the id suffix. Defaults to
	// model.KeyByName.
	KeyStrategy model.KeyStrategy
	// FoodSeparator joins the food list. Defaults to ",".
	FoodSeparator string
	// ListID is the id of the wrapping list element.
	ListID string
	// Theme carries the resolved go-theme selection. Renderers expose theme and
	// variant names as data attributes and use AssetURL for stylesheets.
	Theme *theme.RendererConfig
	// Locale and Translator localise the detail labels.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// WithDefaults returns a copy with every empty field set to its default.
func (o RenderOptions) WithDefaults() RenderOptions {
	out := o
	if out.TriggerPrefix == "" {
		out.TriggerPrefix = model.DefaultTriggerPrefix
	}
	if out.DetailPrefix == "" {
		out.DetailPrefix = model.DefaultDetailPrefix
	}
	if out.KeyStrategy == "" {
		out.KeyStrategy = model.KeyByName
	}
	if out.FoodSeparator == "" {
		out.FoodSeparator = DefaultFoodSeparator
	}
	if strings.TrimSpace(out.ListID) == "" {
		out.ListID = DefaultListID
	}
	return out
}
