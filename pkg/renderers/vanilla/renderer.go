package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fishlist/pkg/model"
	"github.com/goliatone/go-fishlist/pkg/render"
	rendertemplate "github.com/goliatone/go-fishlist/pkg/render/template"
	"github.com/goliatone/go-fishlist/pkg/render/template/pongo"
)

const (
	fishTemplate = "templates/fish.tmpl"
	listTemplate = "templates/list.tmpl"
	pageTemplate = "templates/page.tmpl"

	defaultAssetPrefix = "/assets/"
)

// ErrImageRejected is returned when the sanitizer strips a record's image
// reference from the rendered fragment.
var ErrImageRejected = errors.New("image reference rejected")

// DefaultContainerID is the id of the page element the list is appended to.
const DefaultContainerID = "fish-container"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	policy           *bluemonday.Policy
	sanitize         bool
	assetPrefix      string
	stylesheets      []string
	scripts          []string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must provide templates/fish.tmpl, templates/list.tmpl and templates/page.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSanitizePolicy replaces the fragment policy.
func WithSanitizePolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
			cfg.sanitize = true
		}
	}
}

// WithoutSanitizer returns template output untouched.
func WithoutSanitizer() Option {
	return func(cfg *config) {
		cfg.sanitize = false
	}
}

// WithAssetPrefix sets the URL prefix the page shell uses for the embedded
// stylesheet and toggle script. Defaults to "/assets/".
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(prefix)
		if trimmed == "" {
			return
		}
		if !strings.HasSuffix(trimmed, "/") {
			trimmed += "/"
		}
		cfg.assetPrefix = trimmed
	}
}

// WithStylesheet adds an extra stylesheet link to the page shell.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(href); trimmed != "" {
			cfg.stylesheets = append(cfg.stylesheets, trimmed)
		}
	}
}

// WithScript adds an extra deferred script to the page shell.
func WithScript(src string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			cfg.scripts = append(cfg.scripts, trimmed)
		}
	}
}

// Renderer produces HTML fragments for fish records using the embedded pongo2
// templates.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	policy      *bluemonday.Policy
	assetPrefix string
	stylesheets []string
	scripts     []string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		sanitize:    true,
		assetPrefix: defaultAssetPrefix,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(cfg.templateFS,
			pongo.WithExtension(".tmpl"),
			pongo.WithSetName("fishlist-vanilla"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	out := &Renderer{
		templates:   renderer,
		assetPrefix: cfg.assetPrefix,
		stylesheets: cfg.stylesheets,
		scripts:     cfg.scripts,
	}
	if cfg.sanitize {
		out.policy = cfg.policy
		if out.policy == nil {
			out.policy = FragmentPolicy()
		}
	}
	return out, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderFish renders one record fragment. A nil record fails with
// model.ErrMissingRecord before any template runs.
func (r *Renderer) RenderFish(ctx context.Context, fish *model.Fish, options render.RenderOptions) ([]byte, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	if err := model.Require(fish); err != nil {
		return nil, render.RecordFailure(r.Name(), err)
	}

	opts := options.WithDefaults()
	fragment, err := r.renderFish(fish, opts, render.ResolveLabels(opts))
	if err != nil {
		return nil, err
	}
	return []byte(fragment), nil
}

// RenderList renders every record in collection order inside the list
// wrapper. The collection is checked up front so a missing record aborts the
// whole pass without partial output.
func (r *Renderer) RenderList(ctx context.Context, fish model.Collection, options render.RenderOptions) ([]byte, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}

	snapshot := fish.Snapshot()
	if err := snapshot.Require(); err != nil {
		return nil, render.RecordFailure(r.Name(), err)
	}

	opts := options.WithDefaults()
	labels := render.ResolveLabels(opts)

	var body strings.Builder
	for idx, record := range snapshot {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fragment, err := r.renderFish(record, opts, labels)
		if err != nil {
			return nil, &model.RecordError{Index: idx, Err: err}
		}
		body.WriteString(fragment)
	}

	result, err := r.templates.RenderTemplate(listTemplate, map[string]any{
		"list_id": opts.ListID,
		"theme":   themeView(opts.Theme),
		"body":    body.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render list: %w", err)
	}
	return []byte(r.sanitize(result)), nil
}

// ShellOptions describe the page shell the list is appended into.
type ShellOptions struct {
	Title       string
	Lang        string
	ContainerID string
}

// ContainerIDOrDefault returns the configured container id or the default.
func (o ShellOptions) ContainerIDOrDefault() string {
	if id := strings.TrimSpace(o.ContainerID); id != "" {
		return id
	}
	return DefaultContainerID
}

// RenderShell renders an HTML page with an empty container element. Theme
// CSS variables and stylesheet assets from options.Theme land in the head.
// The shell is not sanitised: it carries no record data.
func (r *Renderer) RenderShell(ctx context.Context, shell ShellOptions, options render.RenderOptions) ([]byte, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(shell.Title)
	if title == "" {
		title = "Fish"
	}
	lang := strings.TrimSpace(shell.Lang)
	if lang == "" {
		lang = "en"
	}

	stylesheets := []string{r.assetPrefix + StylesheetName}
	if themed := themeAsset(options.Theme, ThemeStylesheetKey); themed != "" {
		stylesheets = append(stylesheets, themed)
	}
	stylesheets = append(stylesheets, r.stylesheets...)

	scripts := append([]string{r.assetPrefix + RuntimeScriptName}, r.scripts...)

	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"title":        title,
		"lang":         lang,
		"container_id": shell.ContainerIDOrDefault(),
		"stylesheets":  stylesheets,
		"scripts":      scripts,
		"css_vars":     cssVarsDeclarations(options.Theme),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderFish(fish *model.Fish, opts render.RenderOptions, labels render.Labels) (string, error) {
	result, err := r.templates.RenderTemplate(fishTemplate, map[string]any{
		"fish":      fishView(fish, opts),
		"labels":    labelsView(labels),
		"separator": opts.FoodSeparator,
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render fish %q: %w", fish.Name, err)
	}

	clean := r.sanitize(result)
	if fish.Image != "" && strings.Count(clean, " src=") < strings.Count(result, " src=") {
		return "", fmt.Errorf("vanilla renderer: fish %q: %w: %q", fish.Name, ErrImageRejected, fish.Image)
	}
	return clean, nil
}

func (r *Renderer) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.templates == nil {
		return errors.New("vanilla renderer: template renderer is nil")
	}
	return nil
}

func (r *Renderer) sanitize(fragment string) string {
	if r.policy == nil {
		return fragment
	}
	return r.policy.Sanitize(fragment)
}
