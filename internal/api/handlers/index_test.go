package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fuel-prices-web/internal/api/templates"
	"fuel-prices-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	page  *domain.StationPage
	err   error
	calls int
}

func (s *stubSource) LoadStationPage(ctx context.Context) (*domain.StationPage, error) {
	s.calls++
	return s.page, s.err
}

type failingRenderer struct{}

func (failingRenderer) Render(w io.Writer, name string, data map[string]any) error {
	_, _ = io.WriteString(w, "<html>partial")
	return errors.New("template exploded")
}

func newIndexHandler(t *testing.T, src *stubSource) *IndexHandler {
	t.Helper()
	r, err := templates.NewRenderer()
	require.NoError(t, err)
	return &IndexHandler{Source: src, Renderer: r}
}

func samplePage() *domain.StationPage {
	return &domain.StationPage{
		Stations: []domain.Station{
			{"id": int64(1), "name": "Uno", "locality": "A", "latitude": 10.0, "longitude": 20.0, "diesel": 1.4},
			{"id": int64(2), "name": "Dos", "locality": "B", "latitude": 0.0, "longitude": 0.0, "diesel": nil},
		},
		LastUpdate: "2024-01-01",
		Localidades: []domain.LocalityAverage{
			{Locality: "A", Lat: 10, Lng: 20},
			{Locality: "B", Lat: 0, Lng: 0},
		},
	}
}

func TestIndexRendersPage(t *testing.T) {
	src := &stubSource{page: samplePage()}
	h := newIndexHandler(t, src)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "2024-01-01")
	assert.Contains(t, rec.Body.String(), "Estaciones (2)")
	assert.Equal(t, 1, src.calls)
}

func TestIndexIsIdempotent(t *testing.T) {
	h := newIndexHandler(t, &stubSource{page: samplePage()})

	first := httptest.NewRecorder()
	h.Index(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.Index(second, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestIndexSourceFailure(t *testing.T) {
	h := newIndexHandler(t, &stubSource{err: errors.New("no such table: info")})

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "no such table")
	assert.NotContains(t, rec.Body.String(), "<html")
}

func TestIndexRenderFailureWritesNoPartialPage(t *testing.T) {
	h := &IndexHandler{Source: &stubSource{page: samplePage()}, Renderer: failingRenderer{}}

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "partial")
}

func TestIndexRejectsOtherMethods(t *testing.T) {
	src := &stubSource{page: samplePage()}
	h := newIndexHandler(t, src)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
	assert.Zero(t, src.calls)
}

func TestIndexUnknownPath(t *testing.T) {
	src := &stubSource{page: samplePage()}
	h := newIndexHandler(t, src)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, src.calls)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodDelete, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
