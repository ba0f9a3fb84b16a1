package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-fishlist/pkg/document"
	"github.com/goliatone/go-fishlist/pkg/model"
	"github.com/goliatone/go-fishlist/pkg/render"
	"github.com/goliatone/go-fishlist/pkg/renderers/vanilla"
	"github.com/goliatone/go-fishlist/pkg/source"
)

const defaultRendererName = "vanilla"

// ErrDuplicateKeys is returned in strict mode when several records derive the
// same element ids.
var ErrDuplicateKeys = errors.New("orchestrator: duplicate record keys")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithProvider injects the data provider the collection is read from.
func WithProvider(provider source.Provider) Option {
	return func(o *Orchestrator) {
		o.provider = provider
	}
}

// WithTarget injects the document host RenderCollection appends to.
func WithTarget(target document.Target) Option {
	return func(o *Orchestrator) {
		o.target = target
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger sets the logger used for collision warnings and render events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRenderOptions sets the base options every request starts from.
// Non-empty request fields take precedence.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(o *Orchestrator) {
		o.baseOptions = opts
	}
}

// WithThemeSelector passes a go-theme selector so theme and variant choices
// are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithDefaultTheme names the theme and variant used when a request names none.
func WithDefaultTheme(name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithStrictKeys turns key collisions into ErrDuplicateKeys instead of a
// logged warning.
func WithStrictKeys() Option {
	return func(o *Orchestrator) {
		o.strictKeys = true
	}
}

// Orchestrator coordinates the provider → renderer → target pipeline. It
// applies defaults (vanilla renderer, discard logger) while remaining open to
// dependency injection.
type Orchestrator struct {
	provider        source.Provider
	target          document.Target
	registry        *render.Registry
	defaultRenderer string
	logger          *slog.Logger
	baseOptions     render.RenderOptions
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	strictKeys      bool
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request carries per-call choices. Zero values fall back to the
// orchestrator defaults.
type Request struct {
	// Renderer names the renderer to use.
	Renderer string

	// ThemeName and ThemeVariant are forwarded to the theme selector.
	ThemeName    string
	ThemeVariant string

	// RenderOptions override the base options field by field.
	RenderOptions render.RenderOptions
}

// RenderRecord renders a single record fragment. It does not consult the
// provider or touch the target.
func (o *Orchestrator) RenderRecord(ctx context.Context, fish *model.Fish, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	renderer, opts, err := o.prepare(req)
	if err != nil {
		return nil, err
	}

	out, err := renderer.RenderFish(ctx, fish, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render record: %w", err)
	}
	return out, nil
}

// RenderFragment reads the collection from the provider and renders the
// composed list fragment without appending it anywhere.
func (o *Orchestrator) RenderFragment(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	renderer, opts, err := o.prepare(req)
	if err != nil {
		return nil, err
	}
	return o.renderList(ctx, renderer, opts)
}

// RenderCollection renders the provider's collection and appends the
// fragment to the target. Any record failure aborts before the target is
// touched. Each call appends again; earlier output is never replaced.
func (o *Orchestrator) RenderCollection(ctx context.Context, req Request) error {
	if err := o.ready(ctx); err != nil {
		return err
	}
	if o.target == nil {
		return errors.New("orchestrator: target is required")
	}
	renderer, opts, err := o.prepare(req)
	if err != nil {
		return err
	}

	fragment, err := o.renderList(ctx, renderer, opts)
	if err != nil {
		return err
	}
	if err := o.target.Append(ctx, fragment); err != nil {
		return fmt.Errorf("orchestrator: append fragment: %w", err)
	}
	o.logger.Debug("fish list appended", "renderer", renderer.Name(), "bytes", len(fragment))
	return nil
}

// RenderPage renders the page shell and appends the collection fragment into
// its container, returning the composed document. The renderer must be able
// to produce a shell (the vanilla renderer can).
func (o *Orchestrator) RenderPage(ctx context.Context, req Request, shell vanilla.ShellOptions) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	renderer, opts, err := o.prepare(req)
	if err != nil {
		return nil, err
	}
	shellRenderer, ok := renderer.(ShellRenderer)
	if !ok {
		return nil, fmt.Errorf("orchestrator: renderer %q cannot render a page shell", renderer.Name())
	}

	fragment, err := o.renderList(ctx, renderer, opts)
	if err != nil {
		return nil, err
	}

	page, err := shellRenderer.RenderShell(ctx, shell, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render shell: %w", err)
	}
	doc, err := document.ParseBytes(page)
	if err != nil {
		return nil, err
	}
	container, err := doc.Container(shell.ContainerIDOrDefault())
	if err != nil {
		return nil, err
	}
	if err := container.Append(ctx, fragment); err != nil {
		return nil, fmt.Errorf("orchestrator: append fragment: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, fmt.Errorf("orchestrator: render page: %w", err)
	}
	return buf.Bytes(), nil
}

// ShellRenderer is implemented by renderers that can produce the page the
// list is appended into.
type ShellRenderer interface {
	RenderShell(ctx context.Context, shell vanilla.ShellOptions, options render.RenderOptions) ([]byte, error)
}

func (o *Orchestrator) renderList(ctx context.Context, renderer render.Renderer, opts render.RenderOptions) ([]byte, error) {
	if o.provider == nil {
		return nil, errors.New("orchestrator: provider is required")
	}

	fish, err := o.provider.Fish(ctx)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load collection: %w", err)
	}
	if err := o.checkKeys(fish, opts.KeyStrategy); err != nil {
		return nil, err
	}

	out, err := renderer.RenderList(ctx, fish, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render collection: %w", err)
	}
	return out, nil
}

func (o *Orchestrator) checkKeys(fish model.Collection, strategy model.KeyStrategy) error {
	if strategy == "" {
		strategy = model.KeyByName
	}
	dups := fish.DuplicateKeys(strategy)
	if len(dups) == 0 {
		return nil
	}
	if o.strictKeys {
		return fmt.Errorf("%w: %s", ErrDuplicateKeys, strings.Join(dups, ", "))
	}
	o.logger.Warn("fish records share element ids",
		"keys", dups,
		"strategy", string(strategy),
	)
	return nil
}

func (o *Orchestrator) prepare(req Request) (render.Renderer, render.RenderOptions, error) {
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, render.RenderOptions{}, err
	}

	opts := mergeOptions(o.baseOptions, req.RenderOptions)
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return nil, render.RenderOptions{}, err
		}
		opts.Theme = cfg
	}
	return renderer, opts.WithDefaults(), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	renderer, err := o.registry.Fallback()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func mergeOptions(base, override render.RenderOptions) render.RenderOptions {
	out := base
	if override.TriggerPrefix != "" {
		out.TriggerPrefix = override.TriggerPrefix
	}
	if override.DetailPrefix != "" {
		out.DetailPrefix = override.DetailPrefix
	}
	if override.KeyStrategy != "" {
		out.KeyStrategy = override.KeyStrategy
	}
	if override.FoodSeparator != "" {
		out.FoodSeparator = override.FoodSeparator
	}
	if override.ListID != "" {
		out.ListID = override.ListID
	}
	if override.Theme != nil {
		out.Theme = override.Theme
	}
	if override.Locale != "" {
		out.Locale = override.Locale
	}
	if override.Translator != nil {
		out.Translator = override.Translator
	}
	if override.OnMissing != nil {
		out.OnMissing = override.OnMissing
	}
	return out
}
