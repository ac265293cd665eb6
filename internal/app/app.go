// Package app wires configuration into the collaborators shared by the
// movieform binaries.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-movieform/internal/config"
	"github.com/goliatone/go-movieform/pkg/client"
	"github.com/goliatone/go-movieform/pkg/contract"
	"github.com/goliatone/go-movieform/pkg/renderers/vanilla"
)

// LoadContract returns the contract selected by cfg, or nil when contract
// checks are disabled.
func LoadContract(ctx context.Context, cfg config.BackendConfig) (*contract.Contract, error) {
	if !cfg.Contract {
		return nil, nil
	}
	if cfg.ContractFile == "" {
		return contract.Default()
	}
	doc, err := contract.NewLoader().Load(ctx, contract.SourceFromFile(cfg.ContractFile))
	if err != nil {
		return nil, fmt.Errorf("app: load contract: %w", err)
	}
	ct, err := contract.Parse(ctx, doc, contract.WithOperation(contract.DefaultMethod, cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("app: parse contract: %w", err)
	}
	return ct, nil
}

// NewClient builds the recommendation client for the configured backend. The
// HTTP client carries no timeout unless backend.timeout is set.
func NewClient(ctx context.Context, cfg config.BackendConfig, logger zerolog.Logger) (*client.Client, error) {
	ct, err := LoadContract(ctx, cfg)
	if err != nil {
		return nil, err
	}
	options := []client.Option{
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithPath(cfg.Path),
		client.WithLogger(logger),
	}
	if ct != nil {
		options = append(options, client.WithContract(ct))
	}
	return client.New(cfg.URL, options...), nil
}

// RendererOptions maps the form settings onto the HTML renderer.
func RendererOptions(cfg *config.Config) []vanilla.Option {
	options := []vanilla.Option{
		vanilla.WithLimits(cfg.Limits.Model()),
	}
	if cfg.Form.Title != "" {
		options = append(options, vanilla.WithTitle(cfg.Form.Title))
	}
	if cfg.Form.ThemeVariant != "" {
		options = append(options, vanilla.WithTheme(nil, cfg.Form.ThemeVariant))
	}
	if cfg.Form.ThemeFile != "" {
		options = append(options, vanilla.WithThemeFile(cfg.Form.ThemeFile))
	}
	if cfg.Form.Intro != "" {
		options = append(options, vanilla.WithIntro(cfg.Form.Intro))
	}
	if cfg.Form.TemplatesDir != "" {
		options = append(options, vanilla.WithTemplatesDir(cfg.Form.TemplatesDir))
	}
	return options
}
