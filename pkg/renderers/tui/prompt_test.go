package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-movieform/pkg/model"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	inputConfigs []InputConfig
	selectConfig []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfig = append(s.selectConfig, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestCollectValues_ReturnsAnswersInFormOrder(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Drama", "30", "7.5", "3"},
		selectIdx: []int{0},
	}
	var ratings []string
	prompter := NewPrompter(
		WithPromptDriver(driver),
		WithRatingListener(func(value string) { ratings = append(ratings, value) }),
	)

	values, err := prompter.CollectValues(context.Background())
	if err != nil {
		t.Fatalf("collect values: %v", err)
	}

	want := model.FormValues{
		model.FieldGenre:     "Drama",
		model.FieldRuntime:   "short",
		model.FieldAge:       "30",
		model.FieldMinRating: "7.5",
		model.FieldTopN:      "3",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"7.5"}, ratings); diff != "" {
		t.Fatalf("rating listener mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("expected no info messages, got %v", driver.infoMessages)
	}
}

func TestCollectValues_UsesDefaults(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "18", "8.0", "5"},
		selectIdx: []int{1},
	}
	prompter := NewPrompter(WithPromptDriver(driver))

	if _, err := prompter.CollectValues(context.Background()); err != nil {
		t.Fatalf("collect values: %v", err)
	}

	defaults := make([]string, 0, len(driver.inputConfigs))
	for _, cfg := range driver.inputConfigs {
		defaults = append(defaults, cfg.Default)
	}
	if diff := cmp.Diff([]string{"", "18", "8.0", "5"}, defaults); diff != "" {
		t.Fatalf("input defaults mismatch (-want +got):\n%s", diff)
	}
	if got := driver.selectConfig[0].DefaultIndex; got != 1 {
		t.Fatalf("expected runtime default index 1 (medium), got %d", got)
	}
	if diff := cmp.Diff([]string{"Short", "Medium", "Long"}, driver.selectConfig[0].Options); diff != "" {
		t.Fatalf("runtime options mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectValues_RepromptsInvalidNumbers(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Crime", "abc", "200", "40", "11", "9", "0", "10"},
		selectIdx: []int{2},
	}
	prompter := NewPrompter(WithPromptDriver(driver))

	values, err := prompter.CollectValues(context.Background())
	if err != nil {
		t.Fatalf("collect values: %v", err)
	}
	if values[model.FieldAge] != "40" || values[model.FieldMinRating] != "9" || values[model.FieldTopN] != "10" {
		t.Fatalf("unexpected values %v", values)
	}

	want := []string{
		"Invalid age: must be a whole number",
		"Invalid age: must be between 1 and 120",
		"Invalid minimum rating: must be between 0 and 10",
		"Invalid number of results: must be between 1 and 50",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectValues_PropagatesAbort(t *testing.T) {
	prompter := NewPrompter(WithPromptDriver(&abortingDriver{}))

	if _, err := prompter.CollectValues(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestPrompter_Confirm(t *testing.T) {
	prompter := NewPrompter(WithPromptDriver(&stubDriver{confirm: []bool{true}}))

	ok, err := prompter.Confirm(context.Background(), "Search again?", false)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !ok {
		t.Fatalf("expected confirmation")
	}
}

type abortingDriver struct{ stubDriver }

func (abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}
