package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/apitoolbox/internal/catalog"
	"github.com/playperu/apitoolbox/internal/config"
	"github.com/playperu/apitoolbox/internal/handler/health"
	"github.com/playperu/apitoolbox/internal/proxy"
	"github.com/playperu/apitoolbox/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; AI features are unavailable")
	} else {
		logger.Info("GEMINI_API_KEY is set")
	}

	// --- Upstreams ---
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	svc := proxy.New(proxy.Config{
		HTTPClient: httpClient,
		URLs: proxy.URLs{
			Dictionary: cfg.DictionaryURL,
			Aladhan:    cfg.AladhanURL,
			FreeToGame: cfg.FreeToGameURL,
			Riddles:    cfg.RiddlesURL,
		},
		Catalog:        catalog.Default(),
		TranslateDelay: cfg.TranslateDelay,
		Logger:         logger,
	})
	logger.Info("upstreams configured",
		"dictionary", cfg.DictionaryURL,
		"aladhan", cfg.AladhanURL,
		"freetogame", cfg.FreeToGameURL,
		"riddles", cfg.RiddlesURL,
	)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, svc, catalog.Default(), cfg.SPADir, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, map[string]health.Checker{
			"dictionary": health.HTTPChecker{Client: httpClient, URL: cfg.DictionaryURL},
			"aladhan":    health.HTTPChecker{Client: httpClient, URL: cfg.AladhanURL},
			"freetogame": health.HTTPChecker{Client: httpClient, URL: cfg.FreeToGameURL},
			"riddles":    health.HTTPChecker{Client: httpClient, URL: cfg.RiddlesURL},
		}).Routes())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
