package render

import (
	"context"
)

// Renderer converts a Snapshot of the form controller's view into a byte
// representation (HTML page, terminal text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot Snapshot, options RenderOptions) ([]byte, error)
}
