package recommendform

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-movieform/pkg/renderers/vanilla"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes reports the patterns registered by RegisterRoutes.
type Routes struct {
	Page   string
	Assets string
}

// MountPath returns the full mount path for the form route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the form page and its assets under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers the form page and the embedded assets
// under basePath. Action and AssetsPrefix default to the mounted routes.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("recommendform: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	page := mountPath(basePath, opts.RoutePath)
	assets := mountPath(basePath, opts.AssetsPath)
	if !strings.HasSuffix(assets, "/") {
		assets += "/"
	}
	if opts.Action == "" {
		opts.Action = page
	}
	if opts.AssetsPrefix == "" {
		opts.AssetsPrefix = assets
	}

	handler, err := HandlerWithOptions(opts)
	if err != nil {
		return Routes{}, err
	}

	pattern := page
	if strings.HasSuffix(pattern, "/") {
		pattern += "{$}"
	}
	mux.Handle(pattern, handler)
	mux.Handle(assets, http.StripPrefix(strings.TrimSuffix(assets, "/"), http.FileServer(http.FS(vanilla.AssetsFS()))))

	return Routes{Page: pattern, Assets: assets}, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
