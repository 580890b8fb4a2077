package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-route-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

const (
	DefaultBaseURL   = "https://catalog.api.2gis.com/3.0/items"
	DefaultLocale    = "ru_RU"
	DefaultPageSize  = 10
	DefaultMaxPages  = 5
	DefaultRateLimit = 5
	DefaultTimeout   = 20 * time.Second
	DefaultRetries   = 2
	DefaultBackoff   = 500 * time.Millisecond

	MinRadiusM = 100
	MaxRadiusM = 2000

	defaultTypes  = "attraction,adm_div.place"
	requestFields = "items.point,items.address_name,items.rubrics,items.description,items.reviews,items.schedule"
)

// APIError is a non-retryable answer from the provider.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("2gis error: %s (status %d, code %d)", e.Message, e.StatusCode, e.Code)
}

func (e *APIError) Unwrap() error { return types.ErrProviderUnavailable }

// RadiusQuery is one radius search around Point.
type RadiusQuery struct {
	Point   types.GeoPoint
	RadiusM int
	Query   string
	Types   string
	// Location biases results towards the user when set.
	Location *types.GeoPoint
	// Date selects which day of the schedule becomes the opening hours.
	Date time.Time
}

// Client talks to the 2GIS Catalog API.
type Client struct {
	baseURL    string
	apiKey     string
	locale     string
	pageSize   int
	maxPages   int
	retries    int
	backoff    time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	logger     *slog.Logger
}

type ClientOption func(*Client)

// Options given empty or non-positive values keep the defaults.

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithLocale(locale string) ClientOption {
	return func(c *Client) {
		if locale != "" {
			c.locale = locale
		}
	}
}

func WithPaging(pageSize, maxPages int) ClientOption {
	return func(c *Client) {
		if pageSize > 0 {
			c.pageSize = pageSize
		}
		if maxPages > 0 {
			c.maxPages = maxPages
		}
	}
}

// WithTimeout bounds a single HTTP request, retries excluded.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout, Transport: c.httpClient.Transport}
		}
	}
}

func WithRetries(retries int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.retries = retries
		c.backoff = backoff
	}
}

// WithRateLimit paces outgoing requests. Zero or less disables pacing.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), max(1, int(requestsPerSecond)))
	}
}

func WithCache(cache Cache) ClientOption {
	return func(c *Client) { c.cache = cache }
}

func NewClient(apiKey string, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		locale:     DefaultLocale,
		pageSize:   DefaultPageSize,
		maxPages:   DefaultMaxPages,
		retries:    DefaultRetries,
		backoff:    DefaultBackoff,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// ClampRadius bounds a search radius to what the API accepts.
func ClampRadius(radiusM int) int {
	return max(MinRadiusM, min(radiusM, MaxRadiusM))
}

// FetchByRadius pages through the search results around q.Point. Pages are
// cached individually; paging stops at the first empty or short page.
func (c *Client) FetchByRadius(ctx context.Context, q RadiusQuery) ([]types.Place, error) {
	ctx, span := otel.Tracer("PlacesProvider").Start(ctx, "FetchByRadius", trace.WithAttributes(
		attribute.String("query", q.Query),
		attribute.Int("radius_m", q.RadiusM),
	))
	defer span.End()

	l := c.logger.With(slog.String("method", "FetchByRadius"), slog.String("query", q.Query))

	radius := ClampRadius(q.RadiusM)
	itemTypes := q.Types
	if itemTypes == "" {
		itemTypes = defaultTypes
	}

	var collected []types.Place
	for page := 1; page <= c.maxPages; page++ {
		key := MakeKey("2gis_radius", c.cacheParams(q, radius, itemTypes, page))

		items, cached := c.cached(ctx, key)
		if !cached {
			params := c.requestParams(q, radius, itemTypes, page)
			var err error
			items, err = c.request(ctx, params)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "provider request failed")
				return collected, err
			}
			if len(items) > 0 {
				c.store(ctx, key, items)
			}
		}

		if len(items) == 0 {
			break
		}
		collected = append(collected, toPlaces(items, q.Date)...)
		if len(items) < c.pageSize {
			break
		}
	}

	l.DebugContext(ctx, "Provider search finished", slog.Int("places", len(collected)))
	span.SetAttributes(attribute.Int("places.count", len(collected)))
	return collected, nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func (c *Client) cacheParams(q RadiusQuery, radius int, itemTypes string, page int) map[string]any {
	params := map[string]any{
		"lon":       round4(q.Point.Lon),
		"lat":       round4(q.Point.Lat),
		"radius":    radius,
		"q":         q.Query,
		"type":      itemTypes,
		"page":      page,
		"page_size": c.pageSize,
		"locale":    c.locale,
	}
	if q.Location != nil {
		params["location"] = []float64{round4(q.Location.Lon), round4(q.Location.Lat)}
	}
	return params
}

func (c *Client) requestParams(q RadiusQuery, radius int, itemTypes string, page int) url.Values {
	v := url.Values{}
	v.Set("q", q.Query)
	v.Set("point", fmt.Sprintf("%v,%v", q.Point.Lon, q.Point.Lat))
	v.Set("radius", strconv.Itoa(radius))
	v.Set("type", itemTypes)
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(c.pageSize))
	v.Set("locale", c.locale)
	v.Set("fields", requestFields)
	v.Set("key", c.apiKey)
	if q.Location != nil {
		v.Set("location", fmt.Sprintf("%v,%v", q.Location.Lon, q.Location.Lat))
		v.Set("search_nearby", "true")
	}
	return v
}

func (c *Client) cached(ctx context.Context, key string) ([]dgisItem, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, ok := c.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var items []dgisItem
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.WarnContext(ctx, "Dropping corrupt cache entry", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return items, true
}

func (c *Client) store(ctx context.Context, key string, items []dgisItem) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err == nil {
		err = c.cache.Set(ctx, key, raw)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to cache provider page", slog.String("key", key), slog.Any("error", err))
	}
}

// request performs one page request, retrying rate limits, server errors
// and transport failures with exponential backoff.
func (c *Client) request(ctx context.Context, params url.Values) ([]dgisItem, error) {
	m := metrics.Get()
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			wait := c.backoff * time.Duration(1<<(attempt-1))
			c.logger.WarnContext(ctx, "Retrying provider request",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
				slog.Any("error", lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		start := time.Now()
		items, retry, err := c.do(ctx, params)
		m.ProviderDurationSeconds.Record(ctx, time.Since(start).Seconds())
		if err == nil {
			return items, nil
		}
		m.ProviderErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("retryable", retry)))
		if !retry {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", types.ErrProviderUnavailable, lastErr)
}

type dgisResponse struct {
	Meta struct {
		Code  int `json:"code"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error,omitempty"`
	} `json:"meta"`
	Result struct {
		Items []dgisItem `json:"items"`
	} `json:"result"`
}

func (c *Client) do(ctx context.Context, params url.Values) ([]dgisItem, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("provider status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, false, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var payload dgisResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode provider response: %w", err)
	}
	switch payload.Meta.Code {
	case http.StatusOK:
		return payload.Result.Items, false, nil
	case http.StatusNotFound:
		return nil, false, nil
	default:
		msg := "unexpected meta code"
		if payload.Meta.Error != nil {
			msg = payload.Meta.Error.Message
		}
		return nil, false, &APIError{StatusCode: resp.StatusCode, Code: payload.Meta.Code, Message: msg}
	}
}
