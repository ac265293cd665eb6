package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-movieform/components/genres"
	"github.com/goliatone/go-movieform/components/recommendform"
	"github.com/goliatone/go-movieform/internal/app"
	"github.com/goliatone/go-movieform/internal/config"
	"github.com/goliatone/go-movieform/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "config file (defaults to ./movieform.yaml when present)")
	backend := flag.String("backend", "", "recommendation service base URL (overrides config)")
	addr := flag.String("addr", "", "listen address (overrides server.host and server.port)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		cfg.Backend.URL = *backend
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
	}
	listen := cfg.Server.Addr()
	if *addr != "" {
		listen = *addr
	}

	logger := logging.Init(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl, err := app.NewClient(ctx, cfg.Backend, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("configure client")
	}

	mux := http.NewServeMux()

	genresRoute, err := genres.RegisterRoutes(mux, cfg.Server.BasePath, genres.WithRoutePath(cfg.Form.GenresRoute))
	if err != nil {
		logger.Fatal().Err(err).Msg("register genre routes")
	}
	formOptions := []recommendform.OptionFn{
		recommendform.WithRecommender(cl),
		recommendform.WithLimits(cfg.Limits.Model()),
		recommendform.WithLogger(logger),
		recommendform.WithGenresEndpoint(genresRoute),
		recommendform.WithRendererOptions(app.RendererOptions(cfg)...),
	}
	if cfg.Form.CSRF {
		csrf := recommendform.NewCSRF()
		csrf.Path = cfg.Server.BasePath
		formOptions = append(formOptions,
			recommendform.WithHiddenFields(csrf.HiddenFields),
			recommendform.WithGuard(csrf.Guard),
		)
	}
	routes, err := recommendform.RegisterRoutes(mux, cfg.Server.BasePath, formOptions...)
	if err != nil {
		logger.Fatal().Err(err).Msg("register form routes")
	}

	server := &http.Server{
		Addr:              listen,
		Handler:           logging.HTTPMiddleware(logger)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().
			Str("addr", listen).
			Str("page", routes.Page).
			Str("backend", cl.Endpoint()).
			Msg("movieform listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
