package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/goliatone/go-movieform/pkg/model"
)

func formatRatingLabel(label string) string {
	return fmt.Sprintf("%s: %s", model.FieldLabel(model.FieldMinRating), label)
}

func formatCount(n int) string {
	noun := "recommendations"
	if n == 1 {
		noun = "recommendation"
	}
	return fmt.Sprintf("Found %s %s", humanize.Comma(int64(n)), noun)
}

func formatCard(position int, card model.Card) string {
	title := fmt.Sprintf("%s · %s (%d)", humanize.Ordinal(position), card.Name, card.Year)
	body := strings.Join([]string{
		fmt.Sprintf("%s  %s  %s", card.Genre, card.Rating, badge(card)),
		card.Tagline,
	}, "\n")
	return pterm.DefaultBox.WithTitle(title).Sprint(body)
}

func formatCards(cards []model.Card) string {
	var b strings.Builder
	b.WriteString(formatCount(len(cards)))
	b.WriteString("\n")
	for i, card := range cards {
		b.WriteString(formatCard(i+1, card))
		b.WriteString("\n")
	}
	return b.String()
}

func badge(card model.Card) string {
	text := "[" + card.Badge + "]"
	switch card.Tone {
	case model.ToneFavorable:
		return pterm.Green(text)
	case model.ToneUnfavorable:
		return pterm.Red(text)
	default:
		return pterm.Blue(text)
	}
}

func formatError(theme Theme, message string) string {
	return pterm.Red(theme.ErrorPrefix + message)
}

func formatValidation(theme Theme, fields map[string][]string) string {
	known := make(map[string]bool, len(fields))
	var lines []string
	for _, field := range model.FieldIDs() {
		messages, ok := fields[field]
		if !ok {
			continue
		}
		known[field] = true
		lines = append(lines, fmt.Sprintf("%s%s: %s", theme.ErrorPrefix, model.FieldLabel(field), strings.Join(messages, ", ")))
	}
	var extra []string
	for field := range fields {
		if !known[field] {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	for _, field := range extra {
		lines = append(lines, fmt.Sprintf("%s%s: %s", theme.ErrorPrefix, field, strings.Join(fields[field], ", ")))
	}
	return pterm.Red(strings.Join(lines, "\n"))
}
