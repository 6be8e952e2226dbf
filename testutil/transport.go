// Package testutil provides helpers for SDK tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// TransportError is returned when the transport runs out of queued responses.
type TransportError struct {
	Reason string
}

func (e TransportError) Error() string { return "testutil transport: " + e.Reason }

// Response is one queued reply.
type Response struct {
	Status  int
	Body    string
	Headers map[string]string
	// Err, when set, is returned instead of a response.
	Err error
	// Gate, when set, holds the reply until it is closed or receives a value.
	Gate <-chan struct{}
}

// Recorded is a request as the transport saw it.
type Recorded struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Transport is an http.RoundTripper that answers from a FIFO queue and records
// every request. It is safe for concurrent use.
type Transport struct {
	mu       sync.Mutex
	queue    []Response
	requests []Recorded
	seen     chan struct{}
}

// NewTransport returns an empty transport.
func NewTransport() *Transport {
	return &Transport{seen: make(chan struct{}, 64)}
}

// Client returns an *http.Client using t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

// Enqueue appends a reply.
func (t *Transport) Enqueue(resp Response) *Transport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.queue = append(t.queue, resp)
	return t
}

// EnqueueJSON appends a reply whose body is v encoded as JSON.
func (t *Transport) EnqueueJSON(status int, v any) *Transport {
	data, err := json.Marshal(v)
	if err != nil {
		return t.Enqueue(Response{Err: err})
	}
	return t.Enqueue(Response{Status: status, Body: string(data)})
}

// EnqueueError appends a transport failure.
func (t *Transport) EnqueueError(err error) *Transport {
	return t.Enqueue(Response{Err: err})
}

// Requests returns a copy of the recorded requests in arrival order.
func (t *Transport) Requests() []Recorded {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Recorded(nil), t.requests...)
}

// Last returns the most recent request.
func (t *Transport) Last() (Recorded, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.requests) == 0 {
		return Recorded{}, false
	}
	return t.requests[len(t.requests)-1], true
}

// Seen is signalled once per request as soon as it is recorded, before any
// Gate is waited on.
func (t *Transport) Seen() <-chan struct{} { return t.seen }

// Pending returns the number of queued replies not yet used.
func (t *Transport) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := Recorded{Method: req.Method, URL: req.URL.String(), Header: req.Header.Clone()}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		_ = req.Body.Close()
		rec.Body = body
	}

	t.mu.Lock()
	t.requests = append(t.requests, rec)
	if len(t.queue) == 0 {
		t.mu.Unlock()
		t.signal()
		return nil, TransportError{Reason: fmt.Sprintf("no response queued for %s %s", req.Method, req.URL.Path)}
	}
	next := t.queue[0]
	t.queue = t.queue[1:]
	t.mu.Unlock()
	t.signal()

	if next.Gate != nil {
		select {
		case <-next.Gate:
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	status := next.Status
	if status == 0 {
		status = http.StatusOK
	}
	resp := &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     make(http.Header),
		Body:       io.NopCloser(bytes.NewBufferString(next.Body)),
		Request:    req,
	}
	resp.Header.Set("Content-Type", "application/json")
	for k, v := range next.Headers {
		resp.Header.Set(k, v)
	}
	return resp, nil
}

func (t *Transport) signal() {
	select {
	case t.seen <- struct{}{}:
	default:
	}
}
