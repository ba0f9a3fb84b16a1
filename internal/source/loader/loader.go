package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-fishlist/pkg/source"
)

// Loader implements source.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

var _ source.Loader = (*Loader)(nil)

// New constructs a Loader. The HTTP client is copied so the timeout can be
// applied without touching the caller's client.
func New(options source.LoaderOptions) *Loader {
	var client *http.Client
	if options.HTTP != nil {
		clone := *options.HTTP
		if options.Timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.Timeout
		}
		client = &clone
	}

	return &Loader{
		fs:      options.Files,
		http:    client,
		timeout: options.Timeout,
	}
}

// Load fetches the raw payload for src and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src source.Source) (source.Document, error) {
	if src == nil {
		return source.Document{}, errors.New("source loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return source.Document{}, err
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case source.SourceKindFile:
		data, err = readFile(src.Location())
	case source.SourceKindFS:
		data, err = readFS(l.fs, src.Location())
	case source.SourceKindURL:
		if l.http == nil {
			return source.Document{}, errors.New("source loader: http support disabled")
		}
		data, err = fetch(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("source loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return source.Document{}, err
	}

	return source.NewDocument(src, data)
}
