package activities

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"activity-portal/internal/metrics"

	"github.com/pkg/errors"
)

const (
	opList       = "list"
	opSignup     = "signup"
	opUnregister = "unregister"

	maxBodyBytes = 1 << 20
)

// Client talks to the remote activities API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse activities api url")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("activities api url must be absolute: %q", baseURL)
	}
	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func (c *Client) List(ctx context.Context) (*Collection, error) {
	body, err := c.do(ctx, opList, http.MethodGet, "/activities", nil)
	if err != nil {
		return nil, err
	}
	collection := NewCollection()
	if err := json.Unmarshal(body, collection); err != nil {
		metrics.UpstreamDecodeFailures.WithLabelValues(opList).Inc()
		return nil, &DecodeError{Op: opList, Err: err}
	}
	return collection, nil
}

func (c *Client) Signup(ctx context.Context, activity, email string) (Result, error) {
	query := url.Values{"email": []string{email}}
	return c.mutate(ctx, opSignup, http.MethodPost, "/activities/"+url.PathEscape(activity)+"/signup", query)
}

func (c *Client) Unregister(ctx context.Context, activity, email string) (Result, error) {
	query := url.Values{"email": []string{email}}
	return c.mutate(ctx, opUnregister, http.MethodDelete, "/activities/"+url.PathEscape(activity)+"/participants", query)
}

func (c *Client) mutate(ctx context.Context, op, method, escapedPath string, query url.Values) (Result, error) {
	body, err := c.do(ctx, op, method, escapedPath, query)
	if err != nil {
		return Result{}, err
	}
	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.UpstreamDecodeFailures.WithLabelValues(op).Inc()
		return Result{}, &DecodeError{Op: op, Err: err}
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, op, method, escapedPath string, query url.Values) ([]byte, error) {
	endpoint := c.endpoint(escapedPath, query)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s request", op)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(op, "transport_error").Inc()
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(op, "transport_error").Inc()
		return nil, &TransportError{Op: op, Err: errors.Wrap(err, "read body")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues(op, "api_error").Inc()
		return nil, &APIError{Op: op, Status: resp.StatusCode, Detail: parseDetail(body)}
	}
	metrics.UpstreamRequests.WithLabelValues(op, "ok").Inc()
	return body, nil
}

func (c *Client) endpoint(escapedPath string, query url.Values) string {
	u := *c.baseURL
	u.RawPath = c.baseURL.EscapedPath() + escapedPath
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		unescaped = u.RawPath
	}
	u.Path = unescaped
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
