// Package fetcher retrieves project file trees from the remote JSON API.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/quantmind-br/blitzpack/internal/domain"
	"github.com/quantmind-br/blitzpack/internal/utils"
)

// Ensure Client implements domain.Fetcher
var _ domain.Fetcher = (*Client)(nil)

// identifierPattern is the whitelist for project identifiers. Identifiers are
// interpolated into the request URL, so this is the sole injection defense.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Client fetches project file trees over HTTP
type Client struct {
	httpClient   *http.Client
	baseURL      string
	timeout      time.Duration
	cache        domain.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
	logger       *utils.Logger
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	BaseURL     string
	Timeout     time.Duration
	EnableCache bool
	CacheTTL    time.Duration
	Cache       domain.Cache
	Logger      *utils.Logger
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseURL:     "https://stackblitz.com",
		Timeout:     30 * time.Second,
		EnableCache: false,
		CacheTTL:    24 * time.Hour,
	}
}

// NewClient creates a new API client
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://stackblitz.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &Client{
		// Per-request deadlines come from the context; the transport itself
		// carries no timeout so the two cannot disagree.
		httpClient:   &http.Client{},
		baseURL:      opts.BaseURL,
		timeout:      opts.Timeout,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache && opts.Cache != nil,
		cacheTTL:     opts.CacheTTL,
		logger:       logger.WithComponent("fetcher"),
	}
}

// Endpoint returns the API endpoint for a project identifier
func (c *Client) Endpoint(projectID string) string {
	return fmt.Sprintf("%s/api/projects/%s?include_files=true", c.baseURL, projectID)
}

// FetchProject retrieves the file tree for a project. The identifier is
// validated before any network I/O. A single bounded-time request is made;
// this layer never retries.
func (c *Client) FetchProject(ctx context.Context, projectID string) (*domain.ProjectTree, error) {
	if !identifierPattern.MatchString(projectID) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, projectID)
	}

	endpoint := c.Endpoint(projectID)

	if c.cacheEnabled {
		if body, err := c.cache.Get(ctx, endpoint); err == nil {
			c.logger.Debug().Str("project", projectID).Msg("Cache hit")
			tree, err := c.parseTree(projectID, body)
			if err == nil {
				tree.FromCache = true
				return tree, nil
			}
			// Poisoned cache entry, fall through to the network
			_ = c.cache.Delete(ctx, endpoint)
		}
	}

	c.logger.Debug().
		Str("project", projectID).
		Str("endpoint", endpoint).
		Dur("timeout", c.timeout).
		Msg("Fetching project")

	body, err := c.doRequest(ctx, projectID, endpoint)
	if err != nil {
		return nil, err
	}

	tree, err := c.parseTree(projectID, body)
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled {
		_ = c.cache.Set(ctx, endpoint, body, c.cacheTTL)
	}

	c.logger.Debug().
		Str("project", projectID).
		Int("files", tree.FileCount()).
		Msg("Fetched project tree")

	return tree, nil
}

// doRequest performs the single bounded-time HTTP request
func (c *Client) doRequest(ctx context.Context, projectID, endpoint string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s fetching project %s", domain.ErrRequestTimeout, c.timeout, projectID)
		}
		return nil, domain.NewFetchError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewRemoteError(projectID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || reqCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w after %s fetching project %s", domain.ErrRequestTimeout, c.timeout, projectID)
		}
		return nil, domain.NewFetchError(endpoint, err)
	}

	return body, nil
}

// parseTree decodes the API response and validates the file collection
func (c *Client) parseTree(projectID string, body []byte) (*domain.ProjectTree, error) {
	var envelope domain.ProjectResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	if len(envelope.Project.AppFiles) == 0 {
		return nil, fmt.Errorf("%w: no appFiles for project %s", domain.ErrMalformedResponse, projectID)
	}

	return &domain.ProjectTree{
		ID:        projectID,
		Files:     envelope.Project.AppFiles,
		FetchedAt: time.Now(),
	}, nil
}

// Close releases client resources
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
