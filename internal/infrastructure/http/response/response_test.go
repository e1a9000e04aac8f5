package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"NotFound", fmt.Errorf("collection %q: %w", "x", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{"CartNotFound", domain.ErrCartNotFound, http.StatusNotFound, "not_found"},
		{"InvalidAction", domain.ErrInvalidCartAction, http.StatusBadRequest, "bad_request"},
		{"UnknownVariant", domain.ErrVariantNotFound, http.StatusBadRequest, "bad_request"},
		{"NotConfigured", domain.ErrStorefrontNotConfigured, http.StatusInternalServerError, "configuration_missing"},
		{"Upstream", fmt.Errorf("product: %w: status 502", domain.ErrUpstreamUnavailable), http.StatusInternalServerError, "upstream_unavailable"},
		{"Other", errors.New("disk on fire"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantType, body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestFromErrorHidesUpstreamDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, fmt.Errorf("product: %w: Throttled by shop 123", domain.ErrUpstreamUnavailable))
	assert.NotContains(t, rec.Body.String(), "shop 123")
}
