package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"fuel-prices-web/internal/ports"

	"github.com/rs/zerolog"
)

const indexTemplate = "index.html"

// Renderer executes a named template with a set of bindings.
type Renderer interface {
	Render(w io.Writer, name string, data map[string]any) error
}

// IndexHandler serves the station price page.
type IndexHandler struct {
	Source   ports.StationPageSource
	Renderer Renderer
}

// Index loads stations, last update and locality averages, and renders
// them. Any load or render failure yields a 500 with no partial page.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowGet(w, r) {
		return
	}

	log := zerolog.Ctx(r.Context())

	page, err := h.Source.LoadStationPage(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load station page failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.Renderer.Render(&buf, indexTemplate, page.Bindings()); err != nil {
		log.Error().Err(err).Msg("render station page failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("write station page failed")
	}
}
