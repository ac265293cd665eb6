package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-movieform/pkg/contract"
	"github.com/goliatone/go-movieform/pkg/model"
)

// ErrTransport marks failures that prevented a response envelope from being
// obtained or decoded.
var ErrTransport = errors.New("client: transport failure")

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client issues recommendation requests against a single backend.
type Client struct {
	baseURL  string
	path     string
	http     *http.Client
	contract *contract.Contract
	logger   zerolog.Logger
	headers  http.Header
}

// New constructs a Client for the backend rooted at baseURL. An empty
// baseURL keeps the request relative to the endpoint path.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		path:    DefaultPath,
		http:    &http.Client{},
		logger:  zerolog.Nop(),
		headers: make(http.Header),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Endpoint reports the absolute URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.baseURL + c.path
}

// Recommend posts the query and decodes the envelope. The body is decoded
// whatever the status code; a failure envelope is returned with a nil error.
func (c *Client) Recommend(ctx context.Context, query model.Query) (model.Response, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return model.Response{}, fmt.Errorf("client: encode query: %w", err)
	}
	if c.contract != nil {
		if err := c.contract.ValidateRequest(body); err != nil {
			return model.Response{}, fmt.Errorf("client: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return model.Response{}, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Response{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.Response{}, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	c.logger.Debug().
		Str("endpoint", c.Endpoint()).
		Int("status", resp.StatusCode).
		Int("bytes", len(payload)).
		Msg("recommend response")

	if c.contract != nil {
		if err := c.contract.ValidateResponse(payload); err != nil {
			return model.Response{}, fmt.Errorf("%w: status %d: %w", ErrTransport, resp.StatusCode, err)
		}
	}

	var out model.Response
	if err := json.Unmarshal(payload, &out); err != nil {
		return model.Response{}, fmt.Errorf("%w: decode status %d: %w", ErrTransport, resp.StatusCode, err)
	}
	return out, nil
}
