package api

import (
	"net/http"

	"fuel-prices-web/internal/api/handlers"
	"fuel-prices-web/internal/api/templates"
	"fuel-prices-web/internal/ports"

	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(source ports.StationPageSource, renderer handlers.Renderer, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	index := &handlers.IndexHandler{
		Source:   source,
		Renderer: renderer,
	}

	mux.HandleFunc("/", index.Index)
	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/static/", http.StripPrefix("/static/", templates.Static()))

	return loggingMiddleware(logger, mux)
}
