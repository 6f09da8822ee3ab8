package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrInvalidURL", ErrInvalidURL, "invalid project URL"},
		{"ErrInvalidIdentifier", ErrInvalidIdentifier, "invalid project identifier"},
		{"ErrRequestTimeout", ErrRequestTimeout, "request timed out"},
		{"ErrMalformedResponse", ErrMalformedResponse, "malformed API response"},
		{"ErrCacheMiss", ErrCacheMiss, "cache miss"},
		{"ErrCacheExpired", ErrCacheExpired, "cache entry expired"},
		{"ErrSinkClosed", ErrSinkClosed, "sink already closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.msg, tt.err.Error())
		})
	}
}

func TestRemoteError(t *testing.T) {
	err := NewRemoteError("my-project", 503)
	assert.Contains(t, err.Error(), "my-project")
	assert.Contains(t, err.Error(), "503")
}

func TestFileTooLargeError(t *testing.T) {
	err := &FileTooLargeError{Path: "src/big.bin", Size: 2048, Limit: 1024}
	assert.Contains(t, err.Error(), "src/big.bin")
	assert.Contains(t, err.Error(), "2048")
	assert.Contains(t, err.Error(), "1024")
}

func TestTotalSizeExceededError(t *testing.T) {
	err := &TotalSizeExceededError{Total: 500, Limit: 400}
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "400")
}

func TestFetchError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewFetchError("https://example.com/api", inner)

	assert.Contains(t, err.Error(), "https://example.com/api")
	assert.True(t, errors.Is(err, inner))
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", NewRemoteError("p", 429), true},
		{"bad gateway", NewRemoteError("p", 502), true},
		{"service unavailable", NewRemoteError("p", 503), true},
		{"gateway timeout", NewRemoteError("p", 504), true},
		{"cloudflare error", NewRemoteError("p", 522), true},
		{"not found", NewRemoteError("p", 404), false},
		{"forbidden", NewRemoteError("p", 403), false},
		{"server error", NewRemoteError("p", 500), false},
		{"timeout sentinel", ErrRequestTimeout, true},
		{"wrapped timeout", fmt.Errorf("fetch: %w", ErrRequestTimeout), true},
		{"invalid identifier", ErrInvalidIdentifier, false},
		{"malformed response", ErrMalformedResponse, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
