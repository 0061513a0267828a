package solveapi

import (
	"log/slog"
	"net/http"

	"crossword-solver/internal/store"
)

// Config holds API server configuration.
type Config struct {
	Store  store.Store
	Logger *slog.Logger
}

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	handler := NewHandler(cfg.Store, cfg.Logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.HandleFunc("POST /v1/solve", handler.Solve)
	mux.HandleFunc("GET /v1/runs/{id}", handler.GetRun)
	mux.HandleFunc("GET /v1/runs", handler.ListRuns)

	var h http.Handler = mux
	h = CORS(h)
	h = Gzip(h)
	h = Logger(cfg.Logger)(h)
	h = Recover(cfg.Logger)(h)

	return h
}
