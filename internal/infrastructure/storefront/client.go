// Package storefront talks to the Shopify Storefront GraphQL API.
package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"resty.dev/v3"
)

const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

// Client implements domain.Storefront over the Storefront GraphQL API
type Client struct {
	http     *resty.Client
	endpoint string
	limiter  *rate.Limiter
	tracer   trace.Tracer
	logger   *slog.Logger

	upstreamDuration metric.Float64Histogram
}

var _ domain.Storefront = (*Client)(nil)

// NewClient creates a storefront client. It fails with domain.ErrStorefrontNotConfigured
// when the store domain or the access token is missing.
func NewClient(cfg *config.StorefrontConfig, tracer trace.Tracer, meter metric.Meter, logger *slog.Logger) (*Client, error) {
	if cfg.StoreDomain == "" || cfg.AccessToken == "" {
		return nil, domain.ErrStorefrontNotConfigured
	}

	upstreamDuration, err := meter.Float64Histogram(
		"storefront.upstream.duration",
		metric.WithDescription("Duration of storefront API calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream duration histogram: %w", err)
	}

	httpClient := resty.NewWithClient(&http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}).
		SetTimeout(cfg.Timeout).
		SetHeader(accessTokenHeader, cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(1, int(cfg.RequestsPerSecond)))
	}

	return &Client{
		http:             httpClient,
		endpoint:         Endpoint(cfg.StoreDomain, cfg.APIVersion),
		limiter:          limiter,
		tracer:           tracer,
		logger:           logger,
		upstreamDuration: upstreamDuration,
	}, nil
}

// Endpoint builds the GraphQL URL of a store. A domain without scheme is served over https.
func Endpoint(storeDomain, apiVersion string) string {
	base := strings.TrimRight(storeDomain, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/api/%s/graphql.json", base, apiVersion)
}

// Close releases idle connections
func (c *Client) Close() error {
	return c.http.Close()
}

// Collection loads one page of a collection
func (c *Client) Collection(ctx context.Context, q domain.CollectionQuery) (*domain.Collection, error) {
	vars := map[string]any{
		"handle":  q.Handle,
		"reverse": q.Reverse,
	}
	if q.SortKey != "" {
		vars["sortKey"] = q.SortKey
	}
	if q.First > 0 {
		vars["first"] = q.First
	}
	if q.After != "" {
		vars["endCursor"] = q.After
	}
	if q.Last > 0 {
		vars["last"] = q.Last
	}
	if q.Before != "" {
		vars["startCursor"] = q.Before
	}
	if len(q.Filters) > 0 {
		vars["filters"] = q.Filters
	}

	data, err := execute[collectionData](ctx, c, "collection", collectionQuery, vars)
	if err != nil {
		return nil, err
	}
	if data.Collection == nil {
		return nil, fmt.Errorf("collection %q: %w", q.Handle, domain.ErrNotFound)
	}
	return toCollection(data.Collection)
}

// Product loads a product with its variants and metafields
func (c *Client) Product(ctx context.Context, handle string) (*domain.Product, error) {
	data, err := execute[productData](ctx, c, "product", productQuery, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, fmt.Errorf("product %q: %w", handle, domain.ErrNotFound)
	}
	p, err := toProduct(data.Product)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Recommendations loads products related to the product with the given handle
func (c *Client) Recommendations(ctx context.Context, handle string) ([]domain.Product, error) {
	data, err := execute[recommendationsData](ctx, c, "recommendations", recommendationsQuery, map[string]any{"productHandle": handle})
	if err != nil {
		return nil, err
	}
	return toProducts(data.ProductRecommendations)
}

// FeaturedCollections loads the most recently updated collections
func (c *Client) FeaturedCollections(ctx context.Context, first int) ([]domain.Collection, error) {
	data, err := execute[featuredCollectionsData](ctx, c, "featured_collections", featuredCollectionsQuery, map[string]any{"first": first})
	if err != nil {
		return nil, err
	}

	collections := make([]domain.Collection, 0, len(data.Collections.Nodes))
	for i := range data.Collections.Nodes {
		col, err := toCollection(&data.Collections.Nodes[i])
		if err != nil {
			return nil, err
		}
		collections = append(collections, *col)
	}
	return collections, nil
}

// FeaturedProducts loads the best selling products
func (c *Client) FeaturedProducts(ctx context.Context, first int) ([]domain.Product, error) {
	data, err := execute[featuredProductsData](ctx, c, "featured_products", featuredProductsQuery, map[string]any{"first": first})
	if err != nil {
		return nil, err
	}
	return toProducts(data.Products.Nodes)
}

// execute posts a GraphQL operation and decodes its data. Transport failures, non-2xx
// statuses and GraphQL errors all wrap domain.ErrUpstreamUnavailable.
func execute[T any](ctx context.Context, c *Client, operation, query string, vars map[string]any) (T, error) {
	var zero T

	ctx, span := c.tracer.Start(ctx, "Storefront."+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.String("graphql.operation.name", operation))

	fail := func(err error, msg string) (T, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, msg)
		c.logger.ErrorContext(ctx, "Storefront request failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return zero, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(fmt.Errorf("%s: %w", operation, err), "Rate limiter wait aborted")
		}
	}

	start := time.Now()
	var out graphQLResponse[T]
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: query, Variables: vars}).
		SetResult(&out).
		Post(c.endpoint)

	result := "success"
	defer func() {
		c.upstreamDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(
				attribute.String("operation", operation),
				attribute.String("result", result),
			),
		)
	}()

	if err != nil {
		result = "failure"
		return fail(fmt.Errorf("%s: %w: %w", operation, domain.ErrUpstreamUnavailable, err), "Request failed")
	}
	if resp.IsError() {
		result = "failure"
		return fail(fmt.Errorf("%s: %w: status %d", operation, domain.ErrUpstreamUnavailable, resp.StatusCode()), "Upstream error status")
	}
	if len(out.Errors) > 0 {
		result = "failure"
		return fail(fmt.Errorf("%s: %w: %s", operation, domain.ErrUpstreamUnavailable, out.Errors[0].Message), "GraphQL error")
	}

	c.logger.DebugContext(ctx, "Storefront request completed",
		slog.String("operation", operation),
		slog.Duration("duration", time.Since(start)),
	)
	span.SetStatus(codes.Ok, "")
	return out.Data, nil
}
