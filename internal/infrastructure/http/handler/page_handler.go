package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
)

// PageHandler serves the storefront page view models
type PageHandler struct {
	home       *service.HomeService
	collection *service.CollectionService
	product    *service.ProductService
	logger     *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(
	home *service.HomeService,
	collection *service.CollectionService,
	product *service.ProductService,
	logger *slog.Logger,
) *PageHandler {
	return &PageHandler{
		home:       home,
		collection: collection,
		product:    product,
		logger:     logger,
	}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	view, err := h.home.Load(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Collection handles GET /collections/{handle}
func (h *PageHandler) Collection(w http.ResponseWriter, r *http.Request) {
	view, err := h.collection.Load(r.Context(), chi.URLParam(r, "handle"), r.URL.Query())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// Product handles GET /products/{handle}
func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	detail, err := h.product.Load(r.Context(), chi.URLParam(r, "handle"), r.URL.Query())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, detail)
}
