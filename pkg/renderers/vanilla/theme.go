package vanilla

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-movieform/pkg/model"
)

// Token names read from the theme manifest.
const (
	TokenBadgeFavorable   = "badge.favorable"
	TokenBadgeUnfavorable = "badge.unfavorable"
	TokenBadgeNeutral     = "badge.neutral"
)

// DefaultManifest is the built-in theme: Bootstrap contextual colours for the
// runtime badges.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "movieform",
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenBadgeFavorable:   "bg-success",
			TokenBadgeUnfavorable: "bg-danger",
			TokenBadgeNeutral:     "bg-primary",
			"color.accent":        "#f5c518",
			"color.muted":         "#6c757d",
		},
	}
}

// Theme is a resolved manifest/variant pair.
type Theme struct {
	name    string
	variant string
	tokens  map[string]string
}

// ResolveTheme merges the variant tokens over the manifest tokens. Missing
// badge tokens fall back to the default manifest. An unknown variant is an
// error.
func ResolveTheme(manifest *theme.Manifest, variant string) (Theme, error) {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	variant = strings.TrimSpace(variant)

	tokens := make(map[string]string, len(manifest.Tokens)+3)
	for key, value := range DefaultManifest().Tokens {
		if strings.HasPrefix(key, "badge.") {
			tokens[key] = value
		}
	}
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return Theme{}, fmt.Errorf("vanilla renderer: theme %q has no variant %q", manifest.Name, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	return Theme{name: manifest.Name, variant: variant, tokens: tokens}, nil
}

// Name reports the manifest name.
func (t Theme) Name() string { return t.name }

// Variant reports the selected variant, if any.
func (t Theme) Variant() string { return t.variant }

// Token returns a resolved token value.
func (t Theme) Token(name string) string { return t.tokens[name] }

// BadgeClass returns the CSS classes of the runtime badge for a tone.
func (t Theme) BadgeClass(tone model.Tone) string {
	token := TokenBadgeNeutral
	switch tone {
	case model.ToneFavorable:
		token = TokenBadgeFavorable
	case model.ToneUnfavorable:
		token = TokenBadgeUnfavorable
	}
	return strings.TrimSpace("badge " + sanitizeClassList(t.tokens[token]))
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// cssVars exposes every non-badge token as a custom property, sorted by name.
func (t Theme) cssVars() []cssVar {
	out := make([]cssVar, 0, len(t.tokens))
	for key, value := range t.tokens {
		if strings.HasPrefix(key, "badge.") {
			continue
		}
		name := "--movieform-" + strings.NewReplacer(".", "-", " ", "-").Replace(key)
		out = append(out, cssVar{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.ContainsAny(token, "\"'<>=") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

type themeFile struct {
	Name     string                      `yaml:"name"`
	Version  string                      `yaml:"version"`
	Variant  string                      `yaml:"variant"`
	Tokens   map[string]string           `yaml:"tokens"`
	Variants map[string]themeFileVariant `yaml:"variants"`
}

type themeFileVariant struct {
	Tokens map[string]string `yaml:"tokens"`
}

// LoadThemeFile reads a YAML theme override. It returns the manifest and the
// variant selected by the file.
func LoadThemeFile(path string) (*theme.Manifest, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("vanilla renderer: read theme file: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme decodes a YAML theme document.
func ParseTheme(data []byte) (*theme.Manifest, string, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("vanilla renderer: decode theme: %w", err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, "", errors.New("vanilla renderer: theme name is required")
	}

	manifest := &theme.Manifest{
		Name:    file.Name,
		Version: file.Version,
		Tokens:  file.Tokens,
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, v := range file.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: v.Tokens}
		}
	}
	return manifest, strings.TrimSpace(file.Variant), nil
}
