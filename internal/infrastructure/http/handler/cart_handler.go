package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

const maxActionBodyBytes = 16 << 10

// CartHandler handles HTTP requests for carts
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// CreateCart handles POST /cart
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.CreateCart(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, cart)
}

// GetCart handles GET /cart/{id}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, cart)
}

// ApplyAction handles POST /cart/{id}/actions
func (h *CartHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	var req dto.CartActionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxActionBodyBytes)).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode cart action",
			slog.String("error", err.Error()),
		)
		response.FromError(w, fmt.Errorf("%w: %w", domain.ErrInvalidCartAction, err))
		return
	}

	cart, err := h.service.ApplyAction(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, cart)
}
