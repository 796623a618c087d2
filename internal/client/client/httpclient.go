package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/config"
	"github.com/dmitrijs2005/fortunekeeper/internal/common"
	"github.com/dmitrijs2005/fortunekeeper/internal/logging"
)

const maxBodySize = 4 << 20

type HTTPClient struct {
	baseURL  string
	loginURL string
	http     *http.Client
	limiter  *rate.Limiter
	logger   logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(cfg *config.Config, logger logging.Logger) *HTTPClient {
	limit := rate.Inf
	if cfg.RequestRate > 0 {
		limit = rate.Limit(cfg.RequestRate)
	}
	burst := cfg.RequestBurst
	if burst < 1 {
		burst = 1
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(cfg.FortuneBaseURL, "/"),
		loginURL: cfg.LoginURL,
		http:     &http.Client{Timeout: cfg.RequestTimeout},
		limiter:  rate.NewLimiter(limit, burst),
		logger:   logger.With("component", "fortune-client"),
	}
}

func (c *HTTPClient) Login(ctx context.Context, appID, subject string) ([]byte, error) {
	form := url.Values{"app_id": {appID}, "line_uid": {subject}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *HTTPClient) DateRange(ctx context.Context, start, end string) ([]byte, error) {
	return c.get(ctx, "sync_date.php", url.Values{"start": {start}, "end": {end}})
}

func (c *HTTPClient) DailyDetail(ctx context.Context, uid, date string) ([]byte, error) {
	return c.get(ctx, "sync_ai_daily.php", url.Values{"uid": {uid}, "date": {date}})
}

func (c *HTTPClient) Month(ctx context.Context, uid, month string) ([]byte, error) {
	return c.get(ctx, "fortune_month.php", url.Values{"uid": {uid}, "month": {month}})
}

func (c *HTTPClient) Year(ctx context.Context, uid, year string) ([]byte, error) {
	return c.get(ctx, "fortune_year.php", url.Values{"uid": {uid}, "year": {year}})
}

func (c *HTTPClient) CalendarMonth(ctx context.Context, uid, month string) ([]byte, error) {
	return c.get(ctx, "get_daily_for_month.php", url.Values{"uid": {uid}, "month": {month}})
}

func (c *HTTPClient) Profile(ctx context.Context, memberID string) ([]byte, error) {
	return c.get(ctx, "get_user_fortune.php", url.Values{"mid": {memberID}})
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	u := c.baseURL + "/" + endpoint + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// do waits for the limiter, sends req and returns the body of a 2xx answer.
func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	ctx := req.Context()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	log := c.logger.With("request_id", requestID, "method", req.Method, "path", req.URL.Path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Warn(ctx, "reading response failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "elapsed", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	return body, nil
}
