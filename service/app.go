package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"simpleblog/app/repositories"
	"simpleblog/app/routes"
	"simpleblog/config"
	"simpleblog/pkg/logger"
)

// App owns the store and the HTTP server built on top of it.
type App struct {
	cfg   config.Config
	srv   *http.Server
	store repositories.Store
}

// NewStore opens the store engine named by kind.
func NewStore(kind string) (repositories.Store, error) {
	switch kind {
	case config.StorageMemory, "":
		return repositories.NewMemoryStore(), nil
	case config.StorageBadger:
		return repositories.NewBadgerStore()
	default:
		return nil, fmt.Errorf("unknown storage type %q", kind)
	}
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	store, err := NewStore(cfg.StorageType)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           routes.NewHandler(store, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	log.Info("app initialized", "addr", srv.Addr, "storage", cfg.StorageType)
	return &App{cfg: cfg, srv: srv, store: store}, nil
}

func (a *App) Handler() http.Handler {
	return a.srv.Handler
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.srv.Addr)
	if err != nil {
		a.store.Close()
		return fmt.Errorf("listen %s: %w", a.srv.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then drains in-flight
// requests for at most the configured shutdown timeout and closes the store.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", ln.Addr().String())
		errCh <- a.srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		err := a.srv.Shutdown(shCtx)
		if cerr := a.store.Close(); cerr != nil {
			log.Error("close store", "error", cerr)
		}
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info("server stopped")
		return nil

	case err := <-errCh:
		a.store.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
