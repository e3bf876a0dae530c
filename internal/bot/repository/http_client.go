package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-stock-bot/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// httpFetcher is the rate limited GET client shared by the HTTP backends.
type httpFetcher struct {
	name           string
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

func newHTTPFetcher(name string, opts Options, defaultPerMinute int, log *logger.Logger) (*httpFetcher, error) {
	timeout, err := opts.Duration("timeout", 10*time.Second)
	if err != nil {
		return nil, err
	}
	perMinute, err := opts.Int("max_request_per_minute", defaultPerMinute)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if perMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}

	return &httpFetcher{
		name: name,
		log:  log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter: limiter,
	}, nil
}

func (f *httpFetcher) get(ctx context.Context, url string) ([]byte, error) {
	fields := []zap.Field{
		zap.String("provider", f.name),
		zap.String("url", url),
	}

	if err := f.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fields = append(fields, zap.Error(err))
		f.log.ErrorContext(ctx, "Failed to create new http request", fields...)
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", f.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s failed to read response body: %w", f.name, err)
	}

	if resp.StatusCode != http.StatusOK {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		f.log.DebugContext(ctx, "Received non-OK response", fields...)
		return nil, fmt.Errorf("%s returned status %d: %s", f.name, resp.StatusCode, truncate(string(body), 200))
	}

	f.log.DebugContext(ctx, "Received response", append(fields, zap.String("body", truncate(string(body), 2000)))...)
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
