package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	fishlist "github.com/goliatone/go-fishlist"
	"github.com/goliatone/go-fishlist/internal/logging"
	"github.com/goliatone/go-fishlist/pkg/model"
	"github.com/goliatone/go-fishlist/pkg/orchestrator"
	"github.com/goliatone/go-fishlist/pkg/render"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fish list over HTTP",
		Long: `Serve the page, the list fragment, single record fragments and the
embedded assets. Records are re-read from the source on every request.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().String("title", "", "page title")
	cmd.Flags().String("container-id", "", "id of the element the list is appended to")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := configFrom(cmd)
	if err != nil {
		return err
	}
	logger := logging.FromContext(ctx)

	a, err := openApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	handler, err := newRouter(a)
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

type handlers struct {
	app    *app
	orch   *orchestrator.Orchestrator
	logger *slog.Logger
}

func newRouter(a *app) (http.Handler, error) {
	orch, err := a.orchestrator(nil)
	if err != nil {
		return nil, err
	}
	h := &handlers{app: a, orch: orch, logger: a.logger}

	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		requestLogger(a.logger),
		middleware.Recoverer,
	)

	r.Get("/", h.page)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Route("/fragments/fish", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{key}", h.record)
	})
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(fishlist.AssetsFS())))

	return r, nil
}

func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	out, err := h.orch.RenderPage(r.Context(), h.app.request(), h.app.shell())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeHTML(w, out)
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.orch.RenderFragment(r.Context(), h.app.request())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeHTML(w, out)
}

func (h *handlers) record(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	fish, err := h.app.provider.Fish(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	strategy := h.app.cfg.Keys()
	var match *model.Fish
	for _, f := range fish {
		if f != nil && f.Key(strategy) == key {
			match = f
			break
		}
	}
	if match == nil {
		http.Error(w, fmt.Sprintf("fish %q not found", key), http.StatusNotFound)
		return
	}

	out, err := h.orch.RenderRecord(r.Context(), match, h.app.request())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeHTML(w, out)
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, orchestrator.ErrDuplicateKeys):
		status = http.StatusConflict
	case errors.Is(err, render.ErrRendererNotFound):
		status = http.StatusNotFound
	}
	h.logger.Error("render failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"missing_record", render.IsMissingRecord(err),
		"error", err,
	)
	http.Error(w, http.StatusText(status), status)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
