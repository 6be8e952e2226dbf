package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/myanmarcares/myanmarcares/sdk/go/auth"
	"github.com/myanmarcares/myanmarcares/sdk/go/headers"
	"github.com/myanmarcares/myanmarcares/sdk/go/routes"
	"github.com/myanmarcares/myanmarcares/sdk/go/testutil"
)

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		raw, prefix, want string
	}{
		{"http://localhost:1337", "/api", "http://localhost:1337/api"},
		{"http://localhost:1337/", "/api", "http://localhost:1337/api"},
		{"https://cms.example.org/api", "/api", "https://cms.example.org/api"},
		{"https://cms.example.org/api/", "api", "https://cms.example.org/api"},
		{"https://example.org/cms?x=1#frag", "/api", "https://example.org/cms/api"},
		{"https://example.org", "/", "https://example.org"},
	}
	for _, tc := range cases {
		got, err := normalizeBaseURL(tc.raw, tc.prefix)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestNewClientRejectsBadConfig(t *testing.T) {
	for _, cfg := range []Config{
		{BaseURL: "localhost:1337"},
		{BaseURL: "http://"},
		{BaseURL: "http://cms.test", MinDonation: -1},
	} {
		_, err := NewClient(cfg)
		var cfgErr ConfigError
		assert.ErrorAs(t, err, &cfgErr, cfg.BaseURL)
	}

	client, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1337/api", client.BaseURL())
}

func TestBearerTokenIsNotDuplicated(t *testing.T) {
	for _, token := range []string{"my-secret-token", "Bearer my-secret-token"} {
		tr := testutil.NewTransport().EnqueueJSON(http.StatusOK, map[string]any{"data": []any{}})
		client := newTransportClient(t, tr, auth.StaticToken(token))
		_, err := client.NGOs.List(context.Background(), ListParams{})
		require.NoError(t, err)
		rec, ok := tr.Last()
		require.True(t, ok)
		assert.Equal(t, "Bearer my-secret-token", rec.Header.Get(headers.Authorization))
	}
}

func TestRequestsWithoutTokenAreAnonymous(t *testing.T) {
	tr := testutil.NewTransport().EnqueueJSON(http.StatusOK, map[string]any{"data": []any{}})
	client := newTransportClient(t, tr, nil)
	_, err := client.Events.List(context.Background(), ListParams{})
	require.NoError(t, err)
	rec, _ := tr.Last()
	assert.Empty(t, rec.Header.Get(headers.Authorization))
}

func TestRequestHeaders(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})

	tr := testutil.NewTransport().
		EnqueueJSON(http.StatusOK, map[string]any{"data": []any{}}).
		EnqueueJSON(http.StatusOK, map[string]any{"data": []any{}})
	client := newTransportClient(t, tr, nil)

	_, err = client.NGOs.List(context.Background(), ListParams{})
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(WithRequestID(context.Background(), "req-123"), sc)
	_, err = client.NGOs.List(ctx, ListParams{})
	require.NoError(t, err)

	reqs := tr.Requests()
	require.Len(t, reqs, 2)
	first := reqs[0].Header
	assert.Equal(t, "application/json", first.Get("Content-Type"))
	assert.Equal(t, "application/json", first.Get("Accept"))
	assert.Equal(t, defaultUserAgent, first.Get("User-Agent"))
	_, err = uuid.Parse(first.Get(headers.RequestID))
	assert.NoError(t, err, "generated request id should be a uuid")
	assert.Empty(t, first.Get(headers.Traceparent))

	second := reqs[1].Header
	assert.Equal(t, "req-123", second.Get(headers.RequestID))
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", second.Get(headers.Traceparent))
}

func TestNotFoundBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ngos/missing", r.URL.Path)
		w.Header().Set(headers.RequestID, "srv-1")
		writeJSON(t, w, http.StatusNotFound, map[string]any{"error": map[string]any{"message": "Not found"}})
	}))
	defer srv.Close()
	client := newTestClient(t, srv, nil)

	_, err := client.NGOs.Get(context.Background(), "missing", "")
	require.Error(t, err)
	var apiErr APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not found", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "srv-1", apiErr.RequestID)
	assert.True(t, IsNotFoundStatus(err))
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "Not found", UserMessage(err))
}

func TestAPIErrorShapes(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		wantErr string
	}{
		{
			name:    "strapi error",
			status:  http.StatusBadRequest,
			body:    `{"data":null,"error":{"status":400,"name":"ValidationError","message":"Invalid identifier or password","details":{}}}`,
			wantMsg: "Invalid identifier or password",
			wantErr: "sdk: ValidationError (400): Invalid identifier or password",
		},
		{
			name:    "html gateway page",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantMsg: "API request failed",
			wantErr: "sdk: http 502: API request failed",
		},
		{
			name:    "empty body",
			status:  http.StatusInternalServerError,
			wantMsg: "API request failed",
			wantErr: "sdk: http 500: API request failed",
		},
		{
			name:    "json without message",
			status:  http.StatusForbidden,
			body:    `{"error":{"status":403,"name":"ForbiddenError"}}`,
			wantMsg: "API request failed",
			wantErr: "sdk: ForbiddenError (403): API request failed",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := testutil.NewTransport().Enqueue(testutil.Response{Status: tc.status, Body: tc.body})
			client := newTransportClient(t, tr, nil)
			_, err := client.Events.List(context.Background(), ListParams{})
			var apiErr APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
			assert.Equal(t, tc.wantErr, apiErr.Error())
		})
	}
}

func TestTransportErrorUnwraps(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	tr := testutil.NewTransport().EnqueueError(boom)
	client := newTransportClient(t, tr, nil)

	_, err := client.Events.List(context.Background(), ListParams{})
	var tErr TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, http.MethodGet, tErr.Method)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(err))
}

func TestCancelledContextIsTransportError(t *testing.T) {
	tr := testutil.NewTransport().Enqueue(testutil.Response{Gate: make(chan struct{})})
	client := newTransportClient(t, tr, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-tr.Seen()
		cancel()
	}()
	_, err := client.NGOs.List(ctx, ListParams{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidJSONIsParseError(t *testing.T) {
	tr := testutil.NewTransport().
		Enqueue(testutil.Response{Status: http.StatusOK, Body: `<html>oops</html>`}).
		Enqueue(testutil.Response{Status: http.StatusOK, Body: `not json`})
	client := newTransportClient(t, tr, nil)

	_, err := client.NGOs.List(context.Background(), ListParams{})
	var pErr ParseError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, http.StatusOK, pErr.Status)

	_, err = client.Users.Me(context.Background())
	require.ErrorAs(t, err, &pErr)
}

func TestDoNoContentLeavesOutputUntouched(t *testing.T) {
	tr := testutil.NewTransport().Enqueue(testutil.Response{Status: http.StatusNoContent})
	client := newTransportClient(t, tr, nil)
	out := map[string]string{"kept": "yes"}
	require.NoError(t, client.Do(context.Background(), http.MethodDelete, "/anything", nil, nil, &out))
	assert.Equal(t, map[string]string{"kept": "yes"}, out)
}

func TestNullSingleEntityIsNotAnError(t *testing.T) {
	tr := testutil.NewTransport().Enqueue(testutil.Response{Status: http.StatusOK, Body: `{"data": null, "meta": {}}`})
	client := newTransportClient(t, tr, nil)

	env, err := client.BlogPosts.Get(context.Background(), "gone", "")
	require.NoError(t, err)
	assert.Nil(t, env.Data)
	assert.False(t, env.Found())
	assert.Nil(t, env.Meta.Pagination)
}

func TestPaginationSummary(t *testing.T) {
	items := make([]map[string]any, 6)
	for i := range items {
		items[i] = map[string]any{"id": i + 1, "title": "Event"}
	}
	tr := testutil.NewTransport().EnqueueJSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": pagination(1, 6, 3, 16),
	})
	client := newTransportClient(t, tr, nil)

	env, err := client.Events.List(context.Background(), ListParams{Page: 1, PageSize: 6})
	require.NoError(t, err)
	info := env.Pagination()
	assert.Equal(t, "showing 6 of 16", info.Summary(len(env.Data)))
	assert.Equal(t, 3, info.PageCount)
	assert.True(t, info.Consistent())
	assert.True(t, info.HasNext())
}

func TestEmptyCollectionIsNeverNil(t *testing.T) {
	tr := testutil.NewTransport().Enqueue(testutil.Response{Status: http.StatusOK, Body: `{"data": null}`})
	client := newTransportClient(t, tr, nil)
	env, err := client.NGOs.List(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Data)
}

func TestTokenSnapshotAtBuildTime(t *testing.T) {
	store := auth.NewTokenStore("t1")
	tr := testutil.NewTransport().
		EnqueueJSON(http.StatusOK, map[string]any{"data": []any{}}).
		EnqueueJSON(http.StatusOK, map[string]any{"data": []any{}})
	client := newTransportClient(t, tr, store)

	req, err := client.newJSONRequest(context.Background(), http.MethodGet, routes.NGOs, nil, nil)
	require.NoError(t, err)
	store.Clear()
	resp, err := client.send(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	_, err = client.NGOs.List(context.Background(), ListParams{})
	require.NoError(t, err)

	reqs := tr.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "Bearer t1", reqs[0].Header.Get(headers.Authorization))
	assert.Empty(t, reqs[1].Header.Get(headers.Authorization))
}

func TestTokenClearedWhileInFlight(t *testing.T) {
	store := auth.NewTokenStore("t1")
	gate := make(chan struct{})
	tr := testutil.NewTransport().
		Enqueue(testutil.Response{Status: http.StatusOK, Body: `{"data":[]}`, Gate: gate})
	client := newTransportClient(t, tr, store)

	done := make(chan error, 1)
	go func() {
		_, err := client.NGOs.List(context.Background(), ListParams{})
		done <- err
	}()
	<-tr.Seen()
	store.Clear()
	close(gate)
	require.NoError(t, <-done)

	rec, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, "Bearer t1", rec.Header.Get(headers.Authorization))
	assert.False(t, store.HasToken())
}

func TestTelemetryHooks(t *testing.T) {
	var (
		entries []LogEntry
		metrics []Metric
		sawReq  bool
		sawResp bool
	)
	hooks := TelemetryHooks{
		OnHTTPRequest:  func(context.Context, *http.Request) { sawReq = true },
		OnHTTPResponse: func(context.Context, *http.Request, *http.Response, error, time.Duration) { sawResp = true },
		OnLogEntry:     func(_ context.Context, e LogEntry) { entries = append(entries, e) },
		OnMetric:       func(_ context.Context, m Metric) { metrics = append(metrics, m) },
	}
	tr := testutil.NewTransport().
		EnqueueJSON(http.StatusOK, map[string]any{"data": []any{}}).
		Enqueue(testutil.Response{Status: http.StatusUnauthorized, Body: `{"error":{"message":"Missing or invalid credentials"}}`})
	client, err := NewClient(Config{BaseURL: "http://cms.test", HTTPClient: tr.Client(), Telemetry: hooks})
	require.NoError(t, err)

	_, err = client.NGOs.List(context.Background(), ListParams{})
	require.NoError(t, err)
	_, err = client.Users.Me(context.Background())
	assert.True(t, IsUnauthorized(err))

	assert.True(t, sawReq)
	assert.True(t, sawResp)
	require.Len(t, metrics, 2)
	assert.Equal(t, "sdk_http_request_latency_ms", metrics[0].Name)

	var messages []string
	for _, e := range entries {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"http_request", "http_response", "http_request", "http_api_error"}, messages)
	assert.Equal(t, LogLevelError, entries[3].Level)
	assert.Equal(t, http.StatusUnauthorized, entries[3].Fields["status"])
}

func TestZerologHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	hooks := ZerologHooks(logger)

	hooks.OnLogEntry(context.Background(), LogEntry{Level: LogLevelInfo, Message: "http_request", Fields: map[string]any{"method": "GET"}})
	hooks.OnLogEntry(context.Background(), LogEntry{Level: LogLevelError, Message: "http_api_error", Fields: map[string]any{"status": 500}})

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "http_request", first["message"])
	assert.Equal(t, "GET", first["method"])
	assert.Equal(t, "error", second["level"])
	assert.EqualValues(t, 500, second["status"])
}

func TestNilServiceClientsReportNotInitialized(t *testing.T) {
	var ngos *NGOsClient
	_, err := ngos.List(context.Background(), ListParams{})
	assert.EqualError(t, err, "sdk: ngos client not initialized")

	var c *Client
	_, _, err = c.exchange(context.Background(), http.MethodGet, "/", nil, nil)
	var cfgErr ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
