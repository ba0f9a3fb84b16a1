package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-fishlist/pkg/model"
)

// Provider supplies the ordered collection a render pass works on.
type Provider interface {
	Fish(ctx context.Context) (model.Collection, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (model.Collection, error)

func (f ProviderFunc) Fish(ctx context.Context) (model.Collection, error) {
	return f(ctx)
}

// Static serves a fixed in-memory collection. Each call returns a fresh
// snapshot so callers cannot mutate the held records.
func Static(fish model.Collection) Provider {
	held := fish.Snapshot()
	return ProviderFunc(func(ctx context.Context) (model.Collection, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return held.Snapshot(), nil
	})
}

type documentProvider struct {
	loader Loader
	src    Source
}

// NewProvider reads src through loader on every call, so edits to the
// underlying document show up on the next render.
func NewProvider(loader Loader, src Source) (Provider, error) {
	if loader == nil {
		return nil, errors.New("source: loader is required")
	}
	if src == nil {
		return nil, errors.New("source: source is required")
	}
	return &documentProvider{loader: loader, src: src}, nil
}

func (p *documentProvider) Fish(ctx context.Context) (model.Collection, error) {
	doc, err := p.loader.Load(ctx, p.src)
	if err != nil {
		return nil, fmt.Errorf("source: load %s: %w", p.src.Location(), err)
	}
	return doc.Decode()
}
