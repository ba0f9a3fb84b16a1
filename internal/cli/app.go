package cli

import (
	"context"
	"fmt"
	"log/slog"

	fishlist "github.com/goliatone/go-fishlist"
	"github.com/goliatone/go-fishlist/internal/config"
	"github.com/goliatone/go-fishlist/pkg/document"
	"github.com/goliatone/go-fishlist/pkg/orchestrator"
	"github.com/goliatone/go-fishlist/pkg/render"
	"github.com/goliatone/go-fishlist/pkg/renderers/vanilla"
	"github.com/goliatone/go-fishlist/pkg/source"
	"github.com/goliatone/go-fishlist/pkg/store"
)

// app holds the pieces a command needs, built from the merged config.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	provider source.Provider
	store    *store.SQLiteStore
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	switch cfg.Source {
	case config.SourceStore:
		db, err := store.OpenSQLite(cfg.Database)
		if err != nil {
			return nil, err
		}
		a.store = db
		a.provider = db
	default:
		provider, err := fileProvider(cfg)
		if err != nil {
			return nil, err
		}
		a.provider = provider
	}
	return a, nil
}

func fileProvider(cfg *config.Config) (source.Provider, error) {
	src, err := source.Resolve(cfg.Data)
	if err != nil {
		return nil, err
	}
	var loaderOpts []source.LoaderOption
	if cfg.AllowHTTP {
		loaderOpts = append(loaderOpts, source.WithHTTP(nil, cfg.HTTPTimeout))
	}
	return source.NewProvider(fishlist.NewLoader(loaderOpts...), src)
}

func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func (a *app) renderOptions() render.RenderOptions {
	return render.RenderOptions{
		TriggerPrefix: a.cfg.TriggerPrefix,
		DetailPrefix:  a.cfg.DetailPrefix,
		KeyStrategy:   a.cfg.Keys(),
		FoodSeparator: a.cfg.FoodSeparator,
		ListID:        a.cfg.ListID,
	}
}

func (a *app) shell() vanilla.ShellOptions {
	return vanilla.ShellOptions{
		Title:       a.cfg.Title,
		ContainerID: a.cfg.ContainerID,
	}
}

func (a *app) orchestrator(target document.Target) (*orchestrator.Orchestrator, error) {
	opts := []orchestrator.Option{
		orchestrator.WithProvider(a.provider),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithDefaultRenderer(a.cfg.Renderer),
		orchestrator.WithRenderOptions(a.renderOptions()),
	}
	if target != nil {
		opts = append(opts, orchestrator.WithTarget(target))
	}
	if a.cfg.StrictKeys {
		opts = append(opts, orchestrator.WithStrictKeys())
	}
	if a.cfg.ThemeFile != "" {
		selector, manifest, err := config.ThemeSelector(a.cfg.ThemeFile, a.cfg.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			orchestrator.WithThemeSelector(selector),
			orchestrator.WithDefaultTheme(manifest.Name, a.cfg.ThemeVariant),
		)
	}
	return orchestrator.New(opts...), nil
}

func (a *app) request() orchestrator.Request {
	return orchestrator.Request{Renderer: a.cfg.Renderer}
}

func openApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, err := newApp(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	return a, nil
}
