// Package restclient talks to the json-server style data server. It is the
// only place that knows the wire conventions (_page, _limit, _sort, _order,
// *_like filters and the X-Total-Count header).
package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// TotalCountHeader carries the unpaginated row count of a list response.
const TotalCountHeader = "X-Total-Count"

const defaultRetryWaitMax = 2 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RetryMax is the number of retries on transport errors. HTTP error
	// responses are never retried. Zero disables retries.
	RetryMax int
	Logger   *slog.Logger
	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
}

// Client is an HTTP client for the data server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	logger     *slog.Logger
}

// New creates a Client. The base URL's trailing slash is trimmed.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = defaultRetryWaitMax
	retryClient.HTTPClient.Timeout = opts.Timeout
	if opts.Transport != nil {
		retryClient.HTTPClient.Transport = opts.Transport
	}
	retryClient.HTTPClient.Transport = NewTransport(retryClient.HTTPClient.Transport, logger)
	retryClient.Logger = nil
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
		}
		return false, nil
	}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		BaseURL:    strings.TrimRight(opts.BaseURL, "/"),
		HTTPClient: retryClient.StandardClient(),
		logger:     logger.With("component", "restclient"),
	}
}

// Do executes a request against the data server. body, when non-nil, is
// encoded as JSON. The caller must close the response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// getJSON decodes a successful response into out and returns its headers.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) (http.Header, error) {
	return c.sendJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, query url.Values, body, out any) (http.Header, error) {
	resp, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := CheckError(resp); err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return resp.Header, nil
}

// totalCount reads X-Total-Count, falling back to fallback when the header
// is missing or malformed.
func totalCount(h http.Header, fallback int) int64 {
	if n, err := strconv.ParseInt(h.Get(TotalCountHeader), 10, 64); err == nil && n >= 0 {
		return n
	}
	return int64(fallback)
}
