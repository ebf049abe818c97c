// Package directory fetches the initial user list from the remote directory service.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/studiowebux/usercrud/internal/config"
	"github.com/studiowebux/usercrud/internal/filter"
	"github.com/studiowebux/usercrud/internal/types"
)

var (
	// ErrUnexpectedStatus is returned for non-2xx responses
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrMalformedBody is returned when the users cannot be decoded from the response
	ErrMalformedBody = errors.New("malformed response body")
)

// maxBodySize caps the response read from the directory
const maxBodySize = 16 << 20

// Options configures a Client
type Options struct {
	URL        string
	UsersQuery string // JMESPath selecting the user array, default "users"
	Headers    map[string]string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional, overrides Timeout
	Logger     *zap.Logger
}

// OptionsFromProfile builds client options from a settings profile
func OptionsFromProfile(p config.Profile, logger *zap.Logger) (Options, error) {
	timeout, err := p.GetTimeout()
	if err != nil {
		return Options{}, err
	}
	return Options{
		URL:        p.URL,
		UsersQuery: p.UsersQuery,
		Headers:    p.Headers,
		Timeout:    timeout,
		Logger:     logger,
	}, nil
}

// Client is a read-only client of the remote directory service
type Client struct {
	url     string
	query   string
	headers map[string]string
	http    *http.Client
	logger  *zap.Logger
	group   singleflight.Group
}

// New creates a directory client
func New(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = config.DefaultDirectoryURL
	}
	if opts.UsersQuery == "" {
		opts.UsersQuery = config.DefaultUsersQuery
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		}
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &Client{
		url:     opts.URL,
		query:   opts.UsersQuery,
		headers: headers,
		http:    httpClient,
		logger:  opts.Logger.With(zap.String("url", opts.URL)),
	}
}

// URL returns the endpoint queried by the client
func (c *Client) URL() string {
	return c.url
}

// Close releases idle connections held by the client
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Fetch retrieves the user list. Concurrent calls share one request.
// The shared request is bounded by the client timeout only; a cancelled
// caller stops waiting without failing the callers that joined it.
func (c *Client) Fetch(ctx context.Context) ([]types.UserRecord, error) {
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(c.url, func() (interface{}, error) {
		return c.fetch(shared)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		users := res.Val.([]types.UserRecord)
		// Each caller gets its own slice
		out := make([]types.UserRecord, len(users))
		copy(out, users)
		return out, nil
	}
}

func (c *Client) fetch(ctx context.Context) ([]types.UserRecord, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	users, err := decodeUsers(body, c.query)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("directory fetched",
		zap.Int("status", resp.StatusCode),
		zap.Int("users", len(users)),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(startTime)))

	return users, nil
}

// decodeUsers selects the user array with query and converts it to records
func decodeUsers(body []byte, query string) ([]types.UserRecord, error) {
	selected, err := filter.Apply(body, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	var remote []types.RemoteUser
	if err := json.Unmarshal(selected, &remote); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if remote == nil {
		return nil, fmt.Errorf("%w: no users at %q", ErrMalformedBody, query)
	}

	users := make([]types.UserRecord, len(remote))
	for i, r := range remote {
		users[i] = r.Record()
	}
	return users, nil
}
