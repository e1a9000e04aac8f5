package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mrops-br/storefront-api/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, err error) {
	JSON(w, status, ErrorResponse{
		Error:   errorType(status),
		Message: err.Error(),
	})
}

// FromError maps a domain error to its status and a client-safe message.
// Upstream and configuration details stay in the logs.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCartNotFound):
		Error(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidCartAction), errors.Is(err, domain.ErrVariantNotFound):
		Error(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrStorefrontNotConfigured):
		JSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "configuration_missing",
			Message: "storefront configuration missing",
		})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		JSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "upstream_unavailable",
			Message: "storefront temporarily unavailable, please retry",
		})
	default:
		JSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   errorType(http.StatusInternalServerError),
			Message: "internal error",
		})
	}
}

func errorType(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusInternalServerError:
		return "internal_server_error"
	default:
		return "error"
	}
}
