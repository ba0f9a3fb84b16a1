package source

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source names where a fish document lives. Loaders switch on Kind and read
// Location.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind tells a Loader how to read a Source.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type location struct {
	kind SourceKind
	loc  string
}

func (l location) Kind() SourceKind { return l.kind }
func (l location) Location() string { return l.loc }
func (l location) String() string   { return string(l.kind) + ":" + l.loc }

// FromFile points at a fish document on local disk.
func FromFile(p string) Source {
	return location{kind: SourceKindFile, loc: filepath.Clean(p)}
}

// FromFS points at a fish document inside the loader's fs.FS.
func FromFS(name string) Source {
	return location{kind: SourceKindFS, loc: path.Clean(name)}
}

// ParseURL accepts absolute http and https URLs only.
func ParseURL(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("source: empty URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("source: invalid URL %q: %w", raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("source: invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("source: invalid URL %q: missing host", raw)
	}
	return location{kind: SourceKindURL, loc: raw}, nil
}

// Resolve maps a data location as typed by a user onto a Source. http and
// https URLs are fetched, file URLs and everything else (including Windows
// drive paths) are read from disk.
func Resolve(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("source: data location is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return FromFile(raw), nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return ParseURL(raw)
	case "file":
		if u.Path == "" {
			return nil, fmt.Errorf("source: file URL %q has no path", raw)
		}
		return FromFile(filepath.FromSlash(u.Path)), nil
	}
	return FromFile(raw), nil
}
