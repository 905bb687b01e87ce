package directions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theoremus-urban-solutions/transit-directions/config"
)

// maxBodyBytes bounds the response read. Transit responses with alternatives
// are a few hundred kilobytes.
const maxBodyBytes = 16 << 20

// Client is an HTTP client for the directions web service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
}

// Result is the single value delivered by FetchAsync.
type Result struct {
	Response *Response
	Err      error
}

// NewClient creates a client from explicit configuration.
// The API key is required.
func NewClient(cfg config.DirectionsConfig, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, config.ErrMissingAPIKey
	}
	base := cfg.BaseURL
	if base == "" {
		base = config.DefaultDirectionsURL
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("directions base URL: %w", err)
	}
	hc := &http.Client{}
	if cfg.TimeoutMS > 0 {
		hc.Timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &Client{
		httpClient: hc,
		baseURL:    base,
		apiKey:     apiKey,
		language:   cfg.Language,
	}, nil
}

// Fetch performs one GET and returns the parsed response.
// Cancelling ctx aborts the request with a TransportError.
func (c *Client) Fetch(ctx context.Context, q Query) (*Response, error) {
	if q.Language == "" {
		q.Language = c.language
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	reqURL := c.requestURL(q, c.apiKey)
	logURL := c.requestURL(q, "REDACTED")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: logURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error repeats the full URL, key included
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, &TransportError{URL: logURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &TransportError{
			URL:        logURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{URL: logURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return DecodeResponse(body)
}

// FetchAsync runs Fetch on its own goroutine. The returned channel receives
// exactly one Result and is then closed.
func (c *Client) FetchAsync(ctx context.Context, q Query) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		resp, err := c.Fetch(ctx, q)
		out <- Result{Response: resp, Err: err}
	}()
	return out
}

func (c *Client) requestURL(q Query, key string) string {
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	return c.baseURL + sep + q.Values(key).Encode()
}
