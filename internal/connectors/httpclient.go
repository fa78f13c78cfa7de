package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lexhelvetia/lexsearch/internal/logger"
)

// DefaultTimeout is the per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// Client is the resilient HTTP client wrapping one external source. It
// owns the source's global rate limiter, so at most one request per
// source is in flight at a time; additional callers queue on the limiter.
type Client struct {
	source  string
	http    *http.Client
	limiter *RateLimiter
	retry   RetryPolicy
}

// NewClient creates a client for the named source with the given
// requests-per-minute budget.
func NewClient(source string, requestsPerMinute int) *Client {
	return &Client{
		source:  source,
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: NewRateLimiter(requestsPerMinute),
		retry:   DefaultRetryPolicy(),
	}
}

// Source returns the source name the client wraps.
func (c *Client) Source() string { return c.source }

// GetJSON issues a GET and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	return c.doJSON(ctx, http.MethodGet, url, nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ServiceError{
			Source:  c.source,
			Kind:    KindGeneric,
			Message: fmt.Sprintf("encoding request: %v", err),
			Err:     err,
		}
	}
	return c.doJSON(ctx, http.MethodPost, url, payload, out)
}

// doJSON runs one request through the rate limiter and retry loop.
// Every failure leaving this method is a classified ServiceError, except
// context cancellation, which propagates as-is from the waits.
func (c *Client) doJSON(ctx context.Context, method, url string, body []byte, out any) error {
	return c.retry.Do(ctx, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return &ServiceError{Source: c.source, Kind: KindGeneric, Message: err.Error(), Err: err}
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		logger.Debug("%s: %s %s", c.source, method, url)

		resp, err := c.http.Do(req)
		if err != nil {
			return ClassifyTransport(c.source, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			se := ClassifyResponse(c.source, resp)
			if se.Kind == KindRateLimited {
				c.limiter.RecordRetryAfter(se.RetryAfter)
			}
			return se
		}

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return ClassifyTransport(c.source, err)
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return &ServiceError{
				Source:  c.source,
				Kind:    KindGeneric,
				Message: fmt.Sprintf("decoding response: %v", err),
				Err:     err,
			}
		}
		return nil
	})
}
