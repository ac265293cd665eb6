package contract

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed recommend.yaml
var embeddedContract embed.FS

// DefaultDocumentName is the embedded contract file.
const DefaultDocumentName = "recommend.yaml"

const (
	DefaultMethod = http.MethodPost
	DefaultPath   = "/recommend"
)

// ValidationError kinds.
const (
	KindRequest  = "request"
	KindResponse = "response"
)

// Contract holds the request and response schemas of the recommendation
// operation and validates JSON payloads against them.
type Contract struct {
	operationID string
	method      string
	path        string
	request     *openapi3.Schema
	response    *openapi3.Schema
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	method string
	path   string
}

// WithOperation selects the operation by method and path.
func WithOperation(method, path string) ParseOption {
	return func(cfg *parseConfig) {
		if m := strings.ToUpper(strings.TrimSpace(method)); m != "" {
			cfg.method = m
		}
		if p := strings.TrimSpace(path); p != "" {
			cfg.path = p
		}
	}
}

// Parse loads the OpenAPI document with kin-openapi and extracts the JSON
// request and 200 response schemas of the selected operation.
func Parse(ctx context.Context, doc Document, options ...ParseOption) (*Contract, error) {
	cfg := parseConfig{method: DefaultMethod, path: DefaultPath}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	document, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := document.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate document: %w", err)
	}

	if document.Paths == nil {
		return nil, errors.New("contract: document does not contain any paths")
	}
	item := document.Paths.Find(cfg.path)
	if item == nil {
		return nil, fmt.Errorf("contract: path %q not found", cfg.path)
	}
	operation := item.GetOperation(cfg.method)
	if operation == nil {
		return nil, fmt.Errorf("contract: operation %s %s not found", cfg.method, cfg.path)
	}

	request, err := requestSchema(operation)
	if err != nil {
		return nil, err
	}
	response, err := responseSchema(operation)
	if err != nil {
		return nil, err
	}

	return &Contract{
		operationID: operation.OperationID,
		method:      cfg.method,
		path:        cfg.path,
		request:     request,
		response:    response,
	}, nil
}

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Default returns the embedded recommendation contract, parsed once.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		ctx := context.Background()
		doc, err := NewLoader().Load(ctx, SourceFromFS(DefaultDocumentName))
		if err != nil {
			defaultErr = err
			return
		}
		defaultContract, defaultErr = Parse(ctx, doc)
	})
	return defaultContract, defaultErr
}

// OperationID reports the operationId declared in the document.
func (c *Contract) OperationID() string { return c.operationID }

// Method reports the HTTP method of the operation.
func (c *Contract) Method() string { return c.method }

// Path reports the path of the operation.
func (c *Contract) Path() string { return c.path }

// ValidateRequest checks a JSON request body against the request schema.
func (c *Contract) ValidateRequest(body []byte) error {
	return validate(KindRequest, c.request, body)
}

// ValidateResponse checks a JSON response body against the response schema.
func (c *Contract) ValidateResponse(body []byte) error {
	return validate(KindResponse, c.response, body)
}

func requestSchema(operation *openapi3.Operation) (*openapi3.Schema, error) {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil, errors.New("contract: operation has no request body")
	}
	media := operation.RequestBody.Value.Content["application/json"]
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("contract: request body has no application/json schema")
	}
	return media.Schema.Value, nil
}

func responseSchema(operation *openapi3.Operation) (*openapi3.Schema, error) {
	if operation.Responses == nil {
		return nil, errors.New("contract: operation has no responses")
	}
	ref := operation.Responses.Map()["200"]
	if ref == nil || ref.Value == nil {
		return nil, errors.New("contract: operation has no 200 response")
	}
	media := ref.Value.Content["application/json"]
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil, errors.New("contract: 200 response has no application/json schema")
	}
	return media.Schema.Value, nil
}

// Issue is one schema violation located by JSON pointer.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists the schema violations of a payload.
type ValidationError struct {
	Kind   string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "contract: invalid payload"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return fmt.Sprintf("contract: invalid %s: %s", e.Kind, strings.Join(parts, "; "))
}

// Payload groups issue messages by path, the shape consumed by
// render.MapErrorPayload.
func (e *ValidationError) Payload() map[string][]string {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e.Issues))
	for _, issue := range e.Issues {
		out[issue.Path] = append(out[issue.Path], issue.Message)
	}
	return out
}

func validate(kind string, schema *openapi3.Schema, body []byte) error {
	if schema == nil {
		return fmt.Errorf("contract: %s schema is not configured", kind)
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("contract: decode %s: %w", kind, err)
	}

	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	verr := &ValidationError{Kind: kind}
	collectIssues(err, verr)
	if len(verr.Issues) == 0 {
		verr.Issues = append(verr.Issues, Issue{Message: err.Error()})
	}
	sort.SliceStable(verr.Issues, func(i, j int) bool {
		return verr.Issues[i].Path < verr.Issues[j].Path
	})
	return verr
}

func collectIssues(err error, verr *ValidationError) {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			collectIssues(inner, verr)
		}
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		verr.Issues = append(verr.Issues, Issue{
			Path:    issuePath(schemaErr),
			Message: strings.TrimSpace(schemaErr.Reason),
		})
		return
	}

	verr.Issues = append(verr.Issues, Issue{Message: err.Error()})
}

// issuePath points at the offending property. Missing required properties
// may be reported against the parent object, in which case the property named
// in the reason is appended.
func issuePath(err *openapi3.SchemaError) string {
	segments := err.JSONPointer()
	if err.SchemaField == "required" {
		name := quotedName(err.Reason)
		if name != "" && (len(segments) == 0 || segments[len(segments)-1] != name) {
			segments = append(append([]string(nil), segments...), name)
		}
	}
	if len(segments) == 0 {
		return ""
	}
	return "/" + strings.Join(segments, "/")
}

func quotedName(reason string) string {
	start := strings.Index(reason, "\"")
	if start < 0 {
		return ""
	}
	end := strings.Index(reason[start+1:], "\"")
	if end < 0 {
		return ""
	}
	return reason[start+1 : start+1+end]
}
