package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"imovel-searcher/internal/config"
	"imovel-searcher/internal/observability"
	"imovel-searcher/internal/resilience"
)

// UpstreamError is returned when the catalog API answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API imóveis: %d - %s", e.StatusCode, e.Body)
}

// ListingRepository reads listing pages from the upstream catalog API
type ListingRepository struct {
	cfg        config.ListingsConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewListingRepository creates a new catalog client
func NewListingRepository(cfg config.ListingsConfig, logger *zap.Logger) *ListingRepository {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &ListingRepository{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: resilience.NewCircuitBreaker("listings-api", cfg.Breaker, logger),
		limiter: limiter,
		logger:  logger,
	}
}

// FetchPage retrieves one page of listings and decodes it. The payload is
// either a JSON array or an object wrapping one; callers resolve the shape.
func (r *ListingRepository) FetchPage(ctx context.Context, page, perPage int) (any, error) {
	body, err := r.FetchRaw(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode listings page %d: %w", page, err)
	}
	return payload, nil
}

// FetchRaw retrieves one page of listings without decoding it
func (r *ListingRepository) FetchRaw(ctx context.Context, page, perPage int) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.doFetch(ctx, page, perPage)
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.UpstreamPageDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())

	if err != nil {
		r.logger.Warn("listings page fetch failed",
			zap.Int("page", page),
			zap.Int("per_page", perPage),
			zap.Error(err),
		)
		return nil, err
	}

	r.logger.Debug("listings page fetched",
		zap.Int("page", page),
		zap.Int("per_page", perPage),
		zap.Duration("duration", time.Since(start)),
	)
	return result.([]byte), nil
}

func (r *ListingRepository) doFetch(ctx context.Context, page, perPage int) ([]byte, error) {
	reqURL, err := r.pageURL(page, perPage)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+r.cfg.BearerToken)
	if r.cfg.Cookie != "" {
		httpReq.Header.Set("Cookie", r.cfg.Cookie)
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func (r *ListingRepository) pageURL(page, perPage int) (string, error) {
	u, err := url.Parse(r.cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid listings base URL: %w", err)
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
