package connectors

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(status int, headers map[string]string) *http.Response {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return &http.Response{StatusCode: status, Header: h}
}

func TestClassifyResponse_Kinds(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusUnauthorized, KindAuthentication},
		{http.StatusForbidden, KindAuthentication},
		{http.StatusNotFound, KindNotFound},
		{http.StatusRequestTimeout, KindTimeout},
		{http.StatusGatewayTimeout, KindTimeout},
		{http.StatusInternalServerError, KindGeneric},
		{http.StatusBadRequest, KindGeneric},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			se := ClassifyResponse("test", response(tt.status, nil))
			assert.Equal(t, tt.want, se.Kind)
			assert.Equal(t, tt.status, se.StatusCode)
		})
	}
}

func TestClassifyResponse_RetryAfterHint(t *testing.T) {
	se := ClassifyResponse("test", response(429, map[string]string{"Retry-After": "7"}))
	assert.Equal(t, KindRateLimited, se.Kind)
	assert.Equal(t, 7*time.Second, se.RetryAfter)
}

func TestClassifyTransport_Timeout(t *testing.T) {
	se := ClassifyTransport("test", context.DeadlineExceeded)
	assert.Equal(t, KindTimeout, se.Kind)
	assert.ErrorIs(t, se, context.DeadlineExceeded)
}

func TestClassifyTransport_Generic(t *testing.T) {
	se := ClassifyTransport("test", errors.New("connection refused"))
	assert.Equal(t, KindGeneric, se.Kind)
	assert.Zero(t, se.StatusCode)
}

// 5xx and timeouts are transient; 4xx, authentication and not-found are
// permanent: retries must never apply to them.
func TestServiceError_Temporary(t *testing.T) {
	tests := []struct {
		name string
		err  *ServiceError
		want bool
	}{
		{"rate limited", &ServiceError{Kind: KindRateLimited, StatusCode: 429}, true},
		{"timeout", &ServiceError{Kind: KindTimeout}, true},
		{"server error", &ServiceError{Kind: KindGeneric, StatusCode: 502}, true},
		{"no response", &ServiceError{Kind: KindGeneric}, true},
		{"client error", &ServiceError{Kind: KindGeneric, StatusCode: 400}, false},
		{"authentication", &ServiceError{Kind: KindAuthentication, StatusCode: 401}, false},
		{"not found", &ServiceError{Kind: KindNotFound, StatusCode: 404}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Temporary())
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	notFound := error(&ServiceError{Source: "test", Kind: KindNotFound})
	rateLimited := error(&ServiceError{Source: "test", Kind: KindRateLimited})

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(rateLimited))
	assert.True(t, IsRateLimited(rateLimited))
	assert.True(t, IsAuthentication(&ServiceError{Kind: KindAuthentication}))
	assert.True(t, IsTimeout(&ServiceError{Kind: KindTimeout}))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestServiceError_Message(t *testing.T) {
	se := &ServiceError{Source: "bger", Kind: KindNotFound, StatusCode: 404, Message: "Not Found"}
	require.Contains(t, se.Error(), "bger")
	require.Contains(t, se.Error(), "404")
}
