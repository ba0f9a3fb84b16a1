package source

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader reads the raw fish document behind a Source. The concrete loader
// lives under internal/ and is built by fishlist.NewLoader.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions selects which source kinds a Loader can read.
type LoaderOptions struct {
	// Files backs SourceKindFS sources.
	Files fs.FS

	// HTTP fetches SourceKindURL sources. Nil leaves remote documents
	// disabled.
	HTTP *http.Client

	// Timeout caps each remote fetch.
	Timeout time.Duration
}

// LoaderOption adjusts LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFiles serves SourceKindFS sources from files.
func WithFiles(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Files = files
	}
}

// WithHTTP enables URL sources. A nil client gets a default one.
func WithHTTP(client *http.Client, timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		if client == nil {
			client = &http.Client{}
		}
		opts.HTTP = client
		opts.Timeout = timeout
	}
}

// NewLoaderOptions folds options into a LoaderOptions value.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var cfg LoaderOptions
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
