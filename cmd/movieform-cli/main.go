package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-movieform/components/genres"
	"github.com/goliatone/go-movieform/internal/app"
	"github.com/goliatone/go-movieform/internal/config"
	"github.com/goliatone/go-movieform/internal/logging"
	"github.com/goliatone/go-movieform/pkg/controller"
	"github.com/goliatone/go-movieform/pkg/model"
	"github.com/goliatone/go-movieform/pkg/render"
	"github.com/goliatone/go-movieform/pkg/renderers/tui"
	"github.com/goliatone/go-movieform/pkg/renderers/vanilla"
)

func main() {
	configPath := flag.String("config", "", "config file (defaults to ./movieform.yaml when present)")
	backend := flag.String("backend", "", "recommendation service base URL (overrides config)")
	contractCheck := flag.Bool("contract", false, "validate requests and responses against the OpenAPI contract")
	once := flag.Bool("once", false, "exit after the first search")
	output := flag.String("output", "", "write the last result to this file")
	renderer := flag.String("renderer", "tui", "renderer used for -output (tui or vanilla)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		cfg.Backend.URL = *backend
	}
	if *contractCheck {
		cfg.Backend.Contract = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := logging.Init(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl, err := app.NewClient(ctx, cfg.Backend, logger)
	if err != nil {
		log.Fatalf("Failed to configure client: %v", err)
	}

	registry := render.NewRegistry()
	registry.MustRegister(tui.NewRenderer())
	html, err := vanilla.New(append(app.RendererOptions(cfg), vanilla.WithDefaultStyles())...)
	if err != nil {
		log.Fatalf("Failed to configure renderer: %v", err)
	}
	registry.MustRegister(html)
	if _, err := registry.Get(*renderer); err != nil {
		log.Fatalf("Unknown renderer: %v", err)
	}

	limits := cfg.Limits.Model()
	recorder := render.NewRecorder(model.DefaultValues().Get(model.FieldMinRating))
	ctrl, err := controller.New(cl, controller.Tee(tui.NewView(), recorder),
		controller.WithLimits(limits),
		controller.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to configure controller: %v", err)
	}

	suggestions := genres.New()
	values := model.DefaultValues()

	for {
		prompter := tui.NewPrompter(
			tui.WithDefaults(values),
			tui.WithLimits(limits),
			tui.WithGenreSuggestions(suggestions.Suggest),
			tui.WithRatingListener(ctrl.SyncRating),
		)

		values, err = prompter.CollectValues(ctx)
		if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}

		if err := ctrl.Submit(ctx, values); err != nil {
			logger.Debug().Err(err).Msg("submission finished with error")
		}

		if *output != "" {
			if err := writeOutput(ctx, registry, *renderer, recorder.Snapshot(), values, *output); err != nil {
				log.Fatalf("Failed to write output: %v", err)
			}
		}

		if *once {
			return
		}
		again, err := prompter.Confirm(ctx, "Search again?", true)
		if err != nil || !again {
			return
		}
	}
}

func writeOutput(ctx context.Context, registry *render.Registry, name string, snapshot render.Snapshot, values model.FormValues, path string) error {
	payload, _, err := registry.Render(ctx, name, snapshot, render.RenderOptions{Values: values})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Result written to %s\n", path)
	return nil
}
