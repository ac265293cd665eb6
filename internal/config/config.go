// Package config loads movieform settings from movieform.yaml and MOVIEFORM_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-movieform/internal/logging"
	"github.com/goliatone/go-movieform/pkg/model"
)

// EnvPrefix prefixes every environment override, e.g. MOVIEFORM_BACKEND_URL.
const EnvPrefix = "MOVIEFORM"

type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Backend BackendConfig  `mapstructure:"backend"`
	Form    FormConfig     `mapstructure:"form"`
	Limits  LimitsConfig   `mapstructure:"limits"`
	Log     logging.Config `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	BasePath        string        `mapstructure:"base_path"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr joins host and port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type BackendConfig struct {
	URL  string `mapstructure:"url"`
	Path string `mapstructure:"path"`
	// Timeout bounds each recommendation call. Zero leaves calls unbounded.
	Timeout time.Duration `mapstructure:"timeout"`
	// Contract enables request and response checks against the OpenAPI
	// contract. ContractFile overrides the embedded document.
	Contract     bool   `mapstructure:"contract"`
	ContractFile string `mapstructure:"contract_file"`
}

type FormConfig struct {
	Title        string `mapstructure:"title"`
	Intro        string `mapstructure:"intro"`
	ThemeFile    string `mapstructure:"theme_file"`
	ThemeVariant string `mapstructure:"theme_variant"`
	TemplatesDir string `mapstructure:"templates_dir"`
	GenresRoute  string `mapstructure:"genres_route"`
	// CSRF adds a per-request token field to the form.
	CSRF bool `mapstructure:"csrf"`
}

type LimitsConfig struct {
	MinAge    int     `mapstructure:"min_age"`
	MaxAge    int     `mapstructure:"max_age"`
	MinRating float64 `mapstructure:"min_rating"`
	MaxRating float64 `mapstructure:"max_rating"`
	MinTopN   int     `mapstructure:"min_top_n"`
	MaxTopN   int     `mapstructure:"max_top_n"`
}

// Model converts the configured bounds.
func (l LimitsConfig) Model() model.Limits {
	return model.Limits{
		MinAge:    l.MinAge,
		MaxAge:    l.MaxAge,
		MinRating: l.MinRating,
		MaxRating: l.MaxRating,
		MinTopN:   l.MinTopN,
		MaxTopN:   l.MaxTopN,
	}
}

// Load reads path when set, otherwise movieform.yaml from the working
// directory or ./config. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("movieform")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := model.DefaultLimits()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_path", "/")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("backend.url", "http://localhost:5000")
	v.SetDefault("backend.path", "/recommend")
	v.SetDefault("backend.timeout", "0s")
	v.SetDefault("backend.contract", false)
	v.SetDefault("backend.contract_file", "")
	v.SetDefault("form.title", "Movie Recommendations")
	v.SetDefault("form.intro", "")
	v.SetDefault("form.theme_file", "")
	v.SetDefault("form.theme_variant", "")
	v.SetDefault("form.templates_dir", "")
	v.SetDefault("form.genres_route", "/api/genres")
	v.SetDefault("form.csrf", false)
	v.SetDefault("limits.min_age", defaults.MinAge)
	v.SetDefault("limits.max_age", defaults.MaxAge)
	v.SetDefault("limits.min_rating", defaults.MinRating)
	v.SetDefault("limits.max_rating", defaults.MaxRating)
	v.SetDefault("limits.min_top_n", defaults.MinTopN)
	v.SetDefault("limits.max_top_n", defaults.MaxTopN)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service_name", "movieform")
}

// Validate rejects settings the binaries cannot start with.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: nil config")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: backend.url %q must be an absolute URL", c.Backend.URL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("config: backend.timeout %s must not be negative", c.Backend.Timeout)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	l := c.Limits
	if l.MinAge > l.MaxAge || l.MinRating > l.MaxRating || l.MinTopN > l.MaxTopN {
		return errors.New("config: limits minimums must not exceed maximums")
	}
	return nil
}
