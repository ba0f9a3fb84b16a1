// Package pongo implements template.TemplateRenderer on top of pongo2.
package pongo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-fishlist/pkg/render/template"
)

// FilterFunc is the signature accepted by RegisterFilter.
type FilterFunc func(input any, param any) (any, error)

type Option func(*Engine)

// WithExtension overrides the default ".tpl" template extension.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		e.ext = trimmed
	}
}

// WithSetName names the pongo2 template set. The name shows up in parse
// errors.
func WithSetName(name string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			e.setName = trimmed
		}
	}
}

// Engine renders templates from an fs.FS. Parsed templates are cached per
// path for the lifetime of the engine.
type Engine struct {
	set     *pongo2.TemplateSet
	ext     string
	setName string

	mu    sync.RWMutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

func New(files fs.FS, options ...Option) (*Engine, error) {
	if files == nil {
		return nil, errors.New("pongo: template fs is required")
	}
	e := &Engine{
		ext:     ".tpl",
		setName: "fishlist",
		cache:   make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	e.set = pongo2.NewSet(e.setName, pongo2.NewFSLoader(files))
	return e, nil
}

func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}

	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}

	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("pongo: execute %q: %w", path, err)
	}
	return out, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

// RegisterFilter adds a filter to pongo2. Filters are process wide and a name
// can only be registered once.
func RegisterFilter(name string, fn FilterFunc) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("pongo: filter %q already exists", name)
	}
	return pongo2.RegisterFilter(name, func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		result, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

func init() {
	if !pongo2.FilterExists("joinlist") {
		_ = pongo2.RegisterFilter("joinlist", joinList)
	}
}

// joinList joins a list with the parameter (default ",") and adds no
// whitespace of its own.
func joinList(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	sep := ","
	if param != nil && !param.IsNil() {
		sep = param.String()
	}
	if in.IsString() || !in.CanSlice() {
		return pongo2.AsValue(in.String()), nil
	}
	parts := make([]string, 0, in.Len())
	in.Iterate(func(_, _ int, item, _ *pongo2.Value) bool {
		parts = append(parts, item.String())
		return true
	}, func() {})
	return pongo2.AsValue(strings.Join(parts, sep)), nil
}
