package testutil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportQueueAndRecord(t *testing.T) {
	tr := NewTransport().
		EnqueueJSON(http.StatusOK, map[string]any{"data": []any{}}).
		Enqueue(Response{Status: http.StatusNotFound, Body: `{}`, Headers: map[string]string{"X-Request-Id": "r1"}})

	resp, err := tr.Client().Post("http://cms.test/api/ngos", "application/json", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":[]}`, string(body))

	resp, err = tr.Client().Get("http://cms.test/api/ngos/9")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "r1", resp.Header.Get("X-Request-Id"))

	reqs := tr.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, `{"a":1}`, string(reqs[0].Body))
	assert.Equal(t, "http://cms.test/api/ngos/9", reqs[1].URL)
	assert.Zero(t, tr.Pending())
}

func TestTransportExhaustedAndErrors(t *testing.T) {
	boom := errors.New("connection refused")
	tr := NewTransport().EnqueueError(boom)

	_, err := tr.Client().Get("http://cms.test/api/events")
	assert.ErrorIs(t, err, boom)

	_, err = tr.Client().Get("http://cms.test/api/events")
	var terr TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestTransportGateHoldsReply(t *testing.T) {
	gate := make(chan struct{})
	tr := NewTransport().Enqueue(Response{Status: http.StatusOK, Body: `{}`, Gate: gate})

	done := make(chan error, 1)
	go func() {
		_, err := tr.Client().Get("http://cms.test/api/ngos")
		done <- err
	}()

	select {
	case <-tr.Seen():
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the transport")
	}
	select {
	case <-done:
		t.Fatal("reply was not held by the gate")
	default:
	}
	close(gate)
	require.NoError(t, <-done)
}

func TestTransportGateHonoursContext(t *testing.T) {
	tr := NewTransport().Enqueue(Response{Gate: make(chan struct{})})
	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://cms.test/api/ngos", nil)
	require.NoError(t, err)
	go func() {
		<-tr.Seen()
		cancel()
	}()
	_, err = tr.Client().Do(req)
	assert.ErrorIs(t, err, context.Canceled)
}
