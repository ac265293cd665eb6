package client

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-movieform/pkg/contract"
)

// DefaultPath is the endpoint path used when none is configured.
const DefaultPath = "/recommend"

// Option mutates the client configuration.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Defaults to a client without a
// timeout; callers bound requests through the context.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithPath overrides the endpoint path.
func WithPath(path string) Option {
	return func(c *Client) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.path = path
	}
}

// WithContract validates request and response bodies against the contract.
func WithContract(ct *contract.Contract) Option {
	return func(c *Client) {
		c.contract = ct
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHeader adds a header sent with every request. Content-Type and Accept
// cannot be overridden.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		key = http.CanonicalHeaderKey(strings.TrimSpace(key))
		if key == "" || key == "Content-Type" || key == "Accept" {
			return
		}
		c.headers.Add(key, value)
	}
}
