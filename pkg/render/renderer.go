package render

import (
	"context"

	"github.com/goliatone/go-fishlist/pkg/model"
)

// Renderer converts fish records into a byte representation (HTML by default).
// RenderFish produces one record fragment; RenderList wraps the in-order
// concatenation of record fragments for every element of the collection.
type Renderer interface {
	Name() string
	ContentType() string
	RenderFish(ctx context.Context, fish *model.Fish, options RenderOptions) ([]byte, error)
	RenderList(ctx context.Context, fish model.Collection, options RenderOptions) ([]byte, error)
}
