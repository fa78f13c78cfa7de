package connectors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Kind is the closed set of failure classes a connector can surface.
// Every transport-level failure is mapped into exactly one kind at the
// client boundary; new failure modes must be added to the classifier,
// never leaked upward.
type Kind string

const (
	// KindRateLimited means the source throttled us; RetryAfter may
	// carry the source's hint.
	KindRateLimited Kind = "rate_limited"

	// KindAuthentication means the source rejected our credentials.
	// Terminal for the request.
	KindAuthentication Kind = "authentication"

	// KindNotFound means the requested record does not exist.
	// Terminal for the request.
	KindNotFound Kind = "not_found"

	// KindTimeout means the request timed out or got no response.
	KindTimeout Kind = "timeout"

	// KindGeneric covers everything else.
	KindGeneric Kind = "generic"
)

// ServiceError is the only error type a connector raises.
type ServiceError struct {
	// Source names the external source, e.g. "bger".
	Source string

	// Kind is the failure class.
	Kind Kind

	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int

	// RetryAfter is the source-suggested wait before retrying. Only set
	// for KindRateLimited, and only when the source sent a hint.
	RetryAfter time.Duration

	// Message describes the failure.
	Message string

	// Err is the wrapped cause, if any.
	Err error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Source, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Source, e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Temporary reports whether retrying the request can succeed. Timeouts,
// rate limits and server-side failures are transient; authentication,
// not-found and client errors are permanent.
func (e *ServiceError) Temporary() bool {
	switch e.Kind {
	case KindTimeout, KindRateLimited:
		return true
	case KindGeneric:
		return e.StatusCode == 0 || e.StatusCode >= 500
	}
	return false
}

// IsNotFound reports whether err classifies as a missing record.
func IsNotFound(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == KindNotFound
}

// IsRateLimited reports whether err classifies as throttling.
func IsRateLimited(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == KindRateLimited
}

// IsAuthentication reports whether err classifies as an auth failure.
func IsAuthentication(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == KindAuthentication
}

// IsTimeout reports whether err classifies as a timeout.
func IsTimeout(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Kind == KindTimeout
}

// ClassifyTransport maps a transport error (no HTTP response) to a
// ServiceError. The mapping is total: any error becomes Timeout or
// Generic.
func ClassifyTransport(source string, err error) *ServiceError {
	kind := KindGeneric
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}
	return &ServiceError{
		Source:  source,
		Kind:    kind,
		Message: err.Error(),
		Err:     err,
	}
}

// ClassifyResponse maps a non-2xx HTTP response to a ServiceError.
func ClassifyResponse(source string, resp *http.Response) *ServiceError {
	se := &ServiceError{
		Source:     source,
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		se.Kind = KindRateLimited
		se.RetryAfter = retryAfterHint(resp)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		se.Kind = KindAuthentication
	case resp.StatusCode == http.StatusNotFound:
		se.Kind = KindNotFound
	case resp.StatusCode == http.StatusRequestTimeout, resp.StatusCode == http.StatusGatewayTimeout:
		se.Kind = KindTimeout
	default:
		se.Kind = KindGeneric
	}
	return se
}

func retryAfterHint(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}
