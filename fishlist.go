// Package fishlist renders collections of fish records into HTML fragments
// and appends them to a host document. The root package re-exports the
// pieces most callers need.
package fishlist

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fishlist/pkg/document"
	"github.com/goliatone/go-fishlist/pkg/model"
	"github.com/goliatone/go-fishlist/pkg/orchestrator"
	"github.com/goliatone/go-fishlist/pkg/render"
	"github.com/goliatone/go-fishlist/pkg/source"
)

// Fish is a single record.
type Fish = model.Fish

// Collection is the ordered record list a provider supplies.
type Collection = model.Collection

// RenderOptions describes per-request id prefixes, key strategy, separator
// and theme.
type RenderOptions = render.RenderOptions

// Provider supplies the collection.
type Provider = source.Provider

// Target receives appended fragments.
type Target = document.Target

// ErrMissingRecord is returned when a renderer receives no record.
var ErrMissingRecord = model.ErrMissingRecord

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML renders the provider's collection with the default vanilla
// renderer and returns the fragment without appending it.
func RenderHTML(ctx context.Context, provider Provider, options ...orchestrator.Option) ([]byte, error) {
	opts := append([]orchestrator.Option{orchestrator.WithProvider(provider)}, options...)
	return orchestrator.New(opts...).RenderFragment(ctx, orchestrator.Request{})
}

// AppendHTML renders the provider's collection and appends it to target.
func AppendHTML(ctx context.Context, provider Provider, target Target, options ...orchestrator.Option) error {
	opts := append([]orchestrator.Option{
		orchestrator.WithProvider(provider),
		orchestrator.WithTarget(target),
	}, options...)
	return orchestrator.New(opts...).RenderCollection(ctx, orchestrator.Request{})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
