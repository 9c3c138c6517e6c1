package templates

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fuel-prices-web/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderIndex(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := &domain.StationPage{
		Stations: []domain.Station{
			{"id": int64(1), "name": "Uno <b>", "locality": "A", "latitude": 10.0, "longitude": 20.0, "gasoline95": 1.5, "diesel": nil},
		},
		LastUpdate:  "2024-01-01",
		Localidades: []domain.LocalityAverage{{Locality: "A", Lat: 20, Lng: 30}},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "index.html", page.Bindings()))

	out := buf.String()
	assert.Contains(t, out, `<span id="last-update">2024-01-01</span>`)
	assert.Contains(t, out, "Uno &lt;b&gt;")
	assert.Contains(t, out, "<td>1.500</td>")
	assert.Contains(t, out, "<td>N/A</td>")
	assert.Contains(t, out, "<td>20.00000</td><td>30.00000</td>")
	assert.Contains(t, out, `"locality":"A"`)
	assert.Contains(t, out, "Estaciones (1)")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	err = r.Render(io.Discard, "missing.html", nil)
	assert.Error(t, err)
}

func TestStaticServesMapScript(t *testing.T) {
	srv := httptest.NewServer(http.StripPrefix("/static/", Static()))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/static/map.js")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "markerClusterGroup")
}

func TestPrice(t *testing.T) {
	assert.Equal(t, "N/A", price(nil))
	assert.Equal(t, "1.459", price(1.459))
	assert.Equal(t, "2.000", price(int64(2)))
	assert.Equal(t, "1,50", price("1,50"))
}
