package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/launchboard/launchboard/server/internal/api"
	"github.com/launchboard/launchboard/server/internal/dashboard"
	"github.com/launchboard/launchboard/server/internal/metrics"
	"github.com/launchboard/launchboard/server/internal/middleware"
	"github.com/launchboard/launchboard/server/internal/store"
	"github.com/launchboard/launchboard/server/internal/ws"
)

// routes lists the request labels reported to metrics.
var routes = []string{
	"/api/v1/health",
	"/api/v1/controls",
	"/api/v1/sites",
	"/api/v1/summary",
	"/api/v1/correlation",
	"/api/v1/records",
	"/api/v1/charts/summary.png",
	"/api/v1/charts/correlation.png",
	"/metrics",
	"/ws/session",
}

// newHTTPHandler mounts the REST API, metrics, WebSocket sessions and the
// optional UI on one mux behind the middleware chain.
func newHTTPHandler(
	st *store.Store,
	ctl *dashboard.Controller,
	hub *ws.Hub,
	reg *metrics.Registry,
	origins []string,
	uiDir string,
) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", api.New(st, ctl))
	mux.Handle("/metrics", reg)
	mux.Handle("/ws/session", hub)

	// Optional: serve a pre-built UI from a local directory.
	// The "/" catch-all serves index.html for any unknown path (SPA routing).
	if uiDir != "" {
		mux.Handle("/", spaHandler(uiDir))
		slog.Info("serving UI static files", "dir", uiDir)
	}

	return withMiddleware(mux, reg, origins)
}

// withMiddleware wraps h in the server's middleware chain. Observe sits
// outside Recover so recovered panics are counted as 5xx.
func withMiddleware(h http.Handler, reg *metrics.Registry, origins []string) http.Handler {
	return middleware.Chain(h,
		middleware.CorrelationID(middleware.UUIDv7),
		middleware.Logging,
		middleware.Observe(reg, routes),
		middleware.Recover,
		middleware.CORS(origins),
	)
}

func spaHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// SPA fallback: if the requested file doesn't exist, serve index.html.
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		fs.ServeHTTP(w, r)
	})
}
