package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-movieform/pkg/model"
)

// Prompter collects the recommendation form values interactively.
type Prompter struct {
	cfg config
}

// NewPrompter returns a Prompter using the survey driver unless another one
// is configured.
func NewPrompter(options ...Option) *Prompter {
	cfg := newConfig(options)
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver(cfg.out)
	}
	return &Prompter{cfg: cfg}
}

// CollectValues prompts for every field in form order and returns the raw
// answers. Numeric answers are re-asked until they pass local validation.
func (p *Prompter) CollectValues(ctx context.Context) (model.FormValues, error) {
	if p == nil || p.cfg.driver == nil {
		return nil, ErrNoDriver
	}

	values := make(model.FormValues, len(model.FieldIDs()))

	genre, err := p.cfg.driver.Input(ctx, InputConfig{
		Message: model.FieldLabel(model.FieldGenre),
		Default: p.cfg.defaults.Get(model.FieldGenre),
		Help:    "One or more genres, comma separated (e.g. Drama, Crime)",
		Suggest: p.cfg.suggest,
	})
	if err != nil {
		return nil, err
	}
	values[model.FieldGenre] = genre

	runtime, err := p.promptRuntime(ctx)
	if err != nil {
		return nil, err
	}
	values[model.FieldRuntime] = runtime

	limits := p.cfg.limits
	numeric := []struct {
		field string
		help  string
	}{
		{model.FieldAge, fmt.Sprintf("Whole number between %d and %d", limits.MinAge, limits.MaxAge)},
		{model.FieldMinRating, fmt.Sprintf("Number between %g and %g", limits.MinRating, limits.MaxRating)},
		{model.FieldTopN, fmt.Sprintf("Whole number between %d and %d", limits.MinTopN, limits.MaxTopN)},
	}
	for _, item := range numeric {
		answer, err := p.promptNumber(ctx, item.field, item.help)
		if err != nil {
			return nil, err
		}
		values[item.field] = answer
		if item.field == model.FieldMinRating && p.cfg.onRating != nil {
			p.cfg.onRating(answer)
		}
	}

	return values, nil
}

// Confirm asks a yes/no question through the driver.
func (p *Prompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if p == nil || p.cfg.driver == nil {
		return false, ErrNoDriver
	}
	return p.cfg.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
}

func (p *Prompter) promptRuntime(ctx context.Context) (string, error) {
	categories := model.RuntimeOptions()
	options := make([]string, 0, len(categories))
	defaultIdx := -1
	for i, category := range categories {
		options = append(options, category.Label())
		if strings.EqualFold(p.cfg.defaults.Get(model.FieldRuntime), string(category)) {
			defaultIdx = i
		}
	}

	for {
		idx, err := p.cfg.driver.Select(ctx, SelectConfig{
			Message:      model.FieldLabel(model.FieldRuntime),
			Options:      options,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(categories) {
			_ = p.cfg.driver.Info(ctx, "Invalid runtime selection")
			continue
		}
		return string(categories[idx]), nil
	}
}

func (p *Prompter) promptNumber(ctx context.Context, field, help string) (string, error) {
	label := model.FieldLabel(field)
	for {
		answer, err := p.cfg.driver.Input(ctx, InputConfig{
			Message: label,
			Default: p.cfg.defaults.Get(field),
			Help:    help,
		})
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if err := model.ValidateField(field, answer, p.cfg.limits); err != nil {
			_ = p.cfg.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", strings.ToLower(label), fieldMessage(err, field)))
			continue
		}
		return answer, nil
	}
}

func fieldMessage(err error, field string) string {
	if verr, ok := err.(*model.ValidationError); ok {
		return strings.Join(verr.Fields[field], ", ")
	}
	return err.Error()
}
