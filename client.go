package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myanmarcares/myanmarcares/sdk/go/auth"
	"github.com/myanmarcares/myanmarcares/sdk/go/headers"
	"github.com/myanmarcares/myanmarcares/sdk/go/query"
)

const (
	defaultBaseURL   = "http://localhost:1337"
	defaultAPIPrefix = "/api"
	defaultUserAgent = "myanmarcares-sdk-go/" + Version

	// DefaultMinDonation is the smallest donation amount accepted client-side.
	DefaultMinDonation = 1000
)

// Config wires the base URL, credentials and telemetry for the API client.
// The same Config (and TokenStore) can back any number of clients.
type Config struct {
	// BaseURL is the API origin, e.g. https://cms.example.org. Defaults to http://localhost:1337.
	BaseURL string
	// APIPrefix is prepended to every route. Defaults to "/api".
	APIPrefix string
	// Tokens supplies the bearer token. Nil sends requests unauthenticated.
	Tokens     auth.TokenSource
	HTTPClient *http.Client
	Telemetry  TelemetryHooks
	UserAgent  string
	// MinDonation is the smallest amount Donations.Create accepts. Defaults to DefaultMinDonation.
	MinDonation float64
}

// Client provides typed access to the content API.
//
// A Client holds no mutable state of its own; the only shared state is the
// token behind Config.Tokens.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	tokens      auth.TokenSource
	telemetry   TelemetryHooks
	userAgent   string
	minDonation float64

	// Grouped service clients.
	Auth          *AuthClient
	Users         *UsersClient
	NGOs          *NGOsClient
	Opportunities *OpportunitiesClient
	Donations     *DonationsClient
	Events        *EventsClient
	BlogPosts     *BlogPostsClient
	Payments      *PaymentsClient
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = defaultAPIPrefix
	}
	normalized, err := normalizeBaseURL(baseURL, prefix)
	if err != nil {
		return nil, err
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	minDonation := cfg.MinDonation
	if minDonation < 0 {
		return nil, ConfigError{Reason: "min donation must not be negative"}
	}
	if minDonation == 0 {
		minDonation = DefaultMinDonation
	}
	client := &Client{
		baseURL:     normalized,
		httpClient:  httpClient,
		tokens:      cfg.Tokens,
		telemetry:   cfg.Telemetry,
		userAgent:   ua,
		minDonation: minDonation,
	}
	client.Auth = &AuthClient{client: client}
	client.Users = &UsersClient{client: client}
	client.NGOs = &NGOsClient{client: client}
	client.Opportunities = &OpportunitiesClient{client: client}
	client.Donations = &DonationsClient{client: client}
	client.Events = &EventsClient{client: client}
	client.BlogPosts = &BlogPostsClient{client: client}
	client.Payments = &PaymentsClient{client: client}
	return client, nil
}

// BaseURL returns the normalized origin plus API prefix.
func (c *Client) BaseURL() string { return c.baseURL }

func normalizeBaseURL(raw, prefix string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", ConfigError{Reason: fmt.Sprintf("invalid base URL: %v", err)}
	}
	if u.Scheme == "" {
		return "", ConfigError{Reason: "base URL missing scheme (http/https)"}
	}
	if u.Host == "" {
		return "", ConfigError{Reason: "base URL missing host"}
	}
	path := strings.TrimSuffix(u.Path, "/")
	prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix != "/" && !strings.HasSuffix(path, prefix) {
		path += prefix
	}
	u.Path = path
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/"), nil
}

// newJSONRequest builds a request and captures the bearer token at this moment.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, q *query.Builder, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, ValidationError{Field: "body", Reason: "request body cannot be encoded: " + err.Error()}
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, q), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(headers.RequestID, requestID)
	injectTraceparent(ctx, req)
	snapshotAuth(c.tokens).Apply(req)
	return req, nil
}

// send executes req and converts non-2xx responses into APIError.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if c.telemetry.OnHTTPRequest != nil {
		c.telemetry.OnHTTPRequest(ctx, req)
	}
	c.telemetry.log(ctx, LogLevelInfo, "http_request", map[string]any{
		"method":     req.Method,
		"url":        req.URL.String(),
		"request_id": req.Header.Get(headers.RequestID),
	})
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if c.telemetry.OnHTTPResponse != nil {
		c.telemetry.OnHTTPResponse(ctx, req, resp, err, latency)
	}
	c.telemetry.metric(ctx, "sdk_http_request_latency_ms", float64(latency.Milliseconds()), map[string]string{
		"method": req.Method,
		"path":   req.URL.Path,
	})
	if err != nil {
		c.telemetry.log(ctx, LogLevelError, "http_transport_error", map[string]any{
			"method":     req.Method,
			"url":        req.URL.String(),
			"request_id": req.Header.Get(headers.RequestID),
			"error":      err.Error(),
		})
		return nil, TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		//nolint:errcheck // best-effort cleanup on return
		defer func() { _ = resp.Body.Close() }()
		apiErr := decodeAPIError(resp)
		c.telemetry.log(ctx, LogLevelError, "http_api_error", map[string]any{
			"method":     req.Method,
			"url":        req.URL.String(),
			"status":     resp.StatusCode,
			"request_id": req.Header.Get(headers.RequestID),
			"error":      apiErr.Error(),
		})
		return nil, apiErr
	}
	c.telemetry.log(ctx, LogLevelInfo, "http_response", map[string]any{
		"method":     req.Method,
		"url":        req.URL.String(),
		"status":     resp.StatusCode,
		"latency_ms": latency.Milliseconds(),
	})
	return resp, nil
}

func (c *Client) buildURL(path string, q *query.Builder) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// exchange performs one request and returns the 2xx status and body.
func (c *Client) exchange(ctx context.Context, method, path string, q *query.Builder, payload any) (int, []byte, error) {
	if c == nil {
		return 0, nil, ConfigError{Reason: "client not initialized"}
	}
	req, err := c.newJSONRequest(ctx, method, path, q, payload)
	if err != nil {
		return 0, nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		return 0, nil, err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, TransportError{Method: method, URL: req.URL.String(), Err: err}
	}
	return resp.StatusCode, data, nil
}

// Do sends a request and decodes the JSON response into out, which may be nil.
// A 204 response leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, q *query.Builder, payload, out any) error {
	status, data, err := c.exchange(ctx, method, path, q, payload)
	if err != nil {
		return err
	}
	if status == http.StatusNoContent {
		return nil
	}
	if !json.Valid(data) {
		return ParseError{Status: status, Err: fmt.Errorf("invalid JSON body (%d bytes)", len(data))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return ParseError{Status: status, Err: err}
	}
	return nil
}

// Get fetches path and decodes the envelope's data into T.
func Get[T any](ctx context.Context, c *Client, path string, q *query.Builder) (Envelope[T], error) {
	return doEnvelope[T](ctx, c, http.MethodGet, path, q, nil)
}

// Post sends body as JSON and decodes the envelope's data into T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (Envelope[T], error) {
	return doEnvelope[T](ctx, c, http.MethodPost, path, nil, body)
}

// Put sends body as JSON and decodes the envelope's data into T.
func Put[T any](ctx context.Context, c *Client, path string, body any) (Envelope[T], error) {
	return doEnvelope[T](ctx, c, http.MethodPut, path, nil, body)
}

func doEnvelope[T any](ctx context.Context, c *Client, method, path string, q *query.Builder, body any) (Envelope[T], error) {
	status, data, err := c.exchange(ctx, method, path, q, body)
	if err != nil {
		return Envelope[T]{}, err
	}
	var raw rawEnvelope
	if err := json.Unmarshal(data, &raw); err != nil {
		return Envelope[T]{}, ParseError{Status: status, Err: err}
	}
	env, err := decodeEnvelope[T](raw)
	if err != nil {
		return Envelope[T]{}, ParseError{Status: status, Err: err}
	}
	return env, nil
}

// dataPayload wraps a write body as {"data": ...}.
type dataPayload struct {
	Data any `json:"data"`
}
