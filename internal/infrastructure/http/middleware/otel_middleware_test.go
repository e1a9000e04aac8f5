package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(StructuredLogger(logger))
	r.Get("/products/{handle}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/missing?color=Gold", nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "/products/{handle}", rec["http.route"])
	assert.Equal(t, "/products/missing", rec["url.path"])
	assert.Equal(t, "color=Gold", rec["url.query"])
	assert.EqualValues(t, http.StatusNotFound, rec["http.response.status_code"])
}

func TestHTTPRouteContext(t *testing.T) {
	var route string

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(HTTPRouteContext())
		r.Get("/collections/{handle}", func(w http.ResponseWriter, r *http.Request) {
			route = telemetry.HTTPRouteFromContext(r.Context())
		})
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/collections/watches", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/collections/{handle}", route)
}
