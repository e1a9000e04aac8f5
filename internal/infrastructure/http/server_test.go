package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/storefront-api/internal/infrastructure/storefront/storefronttest"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return m.Called(ctx, cart).Error(0)
}

func (m *mockCartRepository) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	args := m.Called(ctx, id)
	cart, _ := args.Get(0).(*domain.Cart)
	return cart, args.Error(1)
}

type testServer struct {
	*httptest.Server
	telem *telemetry.Telemetry
}

func newTestServer(t *testing.T, storefront domain.Storefront, repo domain.CartRepository, health HealthCheck) *testServer {
	t.Helper()

	telem, err := telemetry.NewTelemetry(&config.OTLPConfig{ServiceName: "storefront-api", Environment: "test"}, slog.LevelError)
	require.NoError(t, err)
	t.Cleanup(func() { _ = telem.Shutdown(context.Background()) })

	tracer, meter, logger := telem.Tracer(), telem.Meter(), telem.Logger
	settings := service.Settings{StoreURL: "https://vastara.online"}
	if repo == nil {
		repo = memory.NewCartRepository(tracer, logger)
	}

	pages := handler.NewPageHandler(
		service.NewHomeService(storefront, tracer, meter, logger),
		service.NewCollectionService(storefront, settings, tracer, meter, logger),
		service.NewProductService(storefront, settings, tracer, meter, logger),
		logger,
	)
	carts := handler.NewCartHandler(service.NewCartService(repo, storefront, tracer, meter, logger), logger)

	srv := NewServer(&config.ServerConfig{Host: "127.0.0.1", Port: "0"}, pages, carts, health, logger, telem)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, telem: telem}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, ts.URL+path, r)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestCollectionRoute(t *testing.T) {
	ts := newTestServer(t, storefronttest.Catalog(), nil, nil)

	resp := ts.do(t, http.MethodGet, "/collections/watches?priceMin=500&priceMax=1000&sort=PRICE&order=desc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	view := decode[dto.CollectionView](t, resp)
	require.Len(t, view.Products, 3)
	assert.Equal(t, "aurora", view.Products[0].Handle)
	assert.Equal(t, "https://vastara.online/collections/watches", view.SEO.Canonical)

	resp = ts.do(t, http.MethodGet, "/collections/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductRoute(t *testing.T) {
	ts := newTestServer(t, storefronttest.Catalog(), nil, nil)

	resp := ts.do(t, http.MethodGet, "/products/adrenaline?color=Gold&strap=Steel", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	detail := decode[dto.ProductDetail](t, resp)
	require.NotNil(t, detail.SelectedVariant)
	assert.Equal(t, "v3", detail.SelectedVariant.ID)
	assert.True(t, detail.ExactMatch)
	assert.Equal(t, "949.00", detail.SelectedVariant.Price.Amount)

	resp = ts.do(t, http.MethodGet, "/products/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not_found", decode[response.ErrorResponse](t, resp).Error)
}

func TestHomeRoute(t *testing.T) {
	ts := newTestServer(t, storefronttest.Catalog(), nil, nil)

	resp := ts.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	home := decode[dto.HomeView](t, resp)
	assert.Len(t, home.FeaturedCollections, 1)
	assert.NotEmpty(t, home.FeaturedProducts)
}

func TestUpstreamErrors(t *testing.T) {
	t.Run("NotConfigured", func(t *testing.T) {
		ts := newTestServer(t, nil, nil, nil)
		resp := ts.do(t, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "configuration_missing", decode[response.ErrorResponse](t, resp).Error)
	})

	t.Run("Unavailable", func(t *testing.T) {
		fake := storefronttest.Catalog()
		fake.Err = domain.ErrUpstreamUnavailable
		ts := newTestServer(t, fake, nil, nil)
		resp := ts.do(t, http.MethodGet, "/collections/watches", "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "upstream_unavailable", decode[response.ErrorResponse](t, resp).Error)
	})
}

func TestCartRoutes(t *testing.T) {
	ts := newTestServer(t, storefronttest.Catalog(), nil, nil)

	resp := ts.do(t, http.MethodPost, "/cart", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cart := decode[dto.CartResponse](t, resp)
	require.NotEmpty(t, cart.ID)

	resp = ts.do(t, http.MethodPost, "/cart/"+cart.ID+"/actions",
		`{"type":"add","productHandle":"adrenaline","variantId":"v1","quantity":2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart = decode[dto.CartResponse](t, resp)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "1798.00", cart.Subtotal.Amount)
	assert.Equal(t, "800.00", cart.Savings.Amount)

	resp = ts.do(t, http.MethodGet, "/cart/"+cart.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.CartResponse](t, resp).ItemCount)

	resp = ts.do(t, http.MethodPost, "/cart/"+cart.ID+"/actions", `{"type":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/cart/"+cart.ID+"/actions",
		`{"type":"add","productHandle":"adrenaline","variantId":"v4"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/cart/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartStoreFailure(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(errors.New("connection refused"))

	ts := newTestServer(t, storefronttest.Catalog(), repo, nil)
	resp := ts.do(t, http.MethodPost, "/cart", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, decode[response.ErrorResponse](t, resp).Message, "connection refused")
	repo.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, storefronttest.Catalog(), nil, nil)
	resp := ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ts = newTestServer(t, storefronttest.Catalog(), nil, func(context.Context) error { return errors.New("redis down") })
	resp = ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, storefronttest.Catalog(), nil, nil)

	resp := ts.do(t, http.MethodGet, "/products/adrenaline", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "storefront_loads_total")
	assert.Contains(t, string(body), `http_route="/products/{handle}"`)
}
