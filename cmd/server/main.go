package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/superlists/internal/auth"
	"github.com/mmynk/superlists/internal/config"
	"github.com/mmynk/superlists/internal/lists"
	"github.com/mmynk/superlists/internal/middleware"
	"github.com/mmynk/superlists/internal/service"
	"github.com/mmynk/superlists/internal/storage"
	"github.com/mmynk/superlists/internal/storage/postgres"
	"github.com/mmynk/superlists/internal/storage/sqlite"
	"github.com/mmynk/superlists/pkg/api/apiconnect"
	"github.com/mmynk/superlists/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Database.Driver)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.SessionDuration)
	authenticator := auth.NewTokenAuthenticator(store)
	issuer, err := auth.NewIssuer(store, auth.NewLogMailer(logger), cfg.HTTP.BaseURL)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	interceptors := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	// Register Connect services
	listPath, listHandler := apiconnect.NewListServiceHandler(service.NewListService(lists.NewService(store)), interceptors)
	mux.Handle(listPath, listHandler)

	authPath, authHandler := apiconnect.NewAuthServiceHandler(
		service.NewAuthService(issuer, authenticator, jwtManager, store, logger),
		interceptors,
	)
	mux.Handle(authPath, authHandler)

	mux.Handle(auth.LoginPath, service.NewLoginHandler(authenticator, jwtManager))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	if cfg.HTTP.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.HTTP.StaticPath)
		if err != nil {
			return fmt.Errorf("failed to resolve static path: %w", err)
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(middleware.LogRequests(middleware.CORS(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", cfg.HTTP.BaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Database) (storage.Store, error) {
	if cfg.Driver == config.DriverPostgres {
		store, err := postgres.New(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := sqlite.New(cfg.Path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
