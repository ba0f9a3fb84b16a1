// Construction helpers live here to prevent import cycles.
package fishlist

import (
	internalLoader "github.com/goliatone/go-fishlist/internal/source/loader"
	"github.com/goliatone/go-fishlist/pkg/source"
)

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return internalLoader.New(source.NewLoaderOptions(options...))
}

// NewFileProvider reads the collection from a JSON or YAML file on every
// render.
func NewFileProvider(path string, options ...source.LoaderOption) (source.Provider, error) {
	return source.NewProvider(NewLoader(options...), source.FromFile(path))
}
