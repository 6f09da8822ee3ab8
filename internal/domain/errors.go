package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidURL indicates the source URL does not contain a project identifier
	ErrInvalidURL = errors.New("invalid project URL")

	// ErrInvalidIdentifier indicates the project identifier failed validation
	ErrInvalidIdentifier = errors.New("invalid project identifier")

	// ErrRequestTimeout indicates the API request exceeded its deadline
	ErrRequestTimeout = errors.New("request timed out")

	// ErrMalformedResponse indicates the API response lacked the file collection
	ErrMalformedResponse = errors.New("malformed API response")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheExpired indicates the cached entry has expired
	ErrCacheExpired = errors.New("cache entry expired")

	// ErrSinkClosed indicates an entry was added to a closed sink
	ErrSinkClosed = errors.New("sink already closed")
)

// RemoteError represents a non-success response from the project API
type RemoteError struct {
	ProjectID  string
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote API error for project %s: HTTP %d", e.ProjectID, e.StatusCode)
}

// NewRemoteError creates a new RemoteError
func NewRemoteError(projectID string, statusCode int) *RemoteError {
	return &RemoteError{
		ProjectID:  projectID,
		StatusCode: statusCode,
	}
}

// FileTooLargeError indicates a single file exceeded the per-file byte limit
type FileTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %s is too large: %d bytes (limit %d)", e.Path, e.Size, e.Limit)
}

// TotalSizeExceededError indicates the cumulative byte total exceeded the limit
type TotalSizeExceededError struct {
	Total int64
	Limit int64
}

func (e *TotalSizeExceededError) Error() string {
	return fmt.Sprintf("total project size %d bytes exceeds limit %d", e.Total, e.Limit)
}

// FetchError represents a network-level failure during fetching
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError
func NewFetchError(url string, err error) *FetchError {
	return &FetchError{
		URL: url,
		Err: err,
	}
}

// IsRetryable checks if an error should be retried by a calling orchestrator.
// The fetch layer itself never retries; a single failed attempt is final there.
func IsRetryable(err error) bool {
	var remote *RemoteError
	if errors.As(err, &remote) {
		switch remote.StatusCode {
		case 429, 502, 503, 504:
			return true
		}
		// Cloudflare errors
		if remote.StatusCode >= 520 && remote.StatusCode <= 530 {
			return true
		}
		return false
	}

	return errors.Is(err, ErrRequestTimeout)
}
