package sdk

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myanmarcares/myanmarcares/sdk/go/testutil"
)

func TestSupersederOnlyNewestIsCurrent(t *testing.T) {
	var s Superseder
	ctx1, t1 := s.Begin(context.Background())
	assert.True(t, t1.Current())
	assert.Equal(t, uint64(1), t1.Generation())

	ctx2, t2 := s.Begin(context.Background())
	assert.False(t, t1.Current())
	assert.True(t, t2.Current())
	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())

	s.Stop()
	assert.False(t, t2.Current())
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)

	assert.False(t, Ticket{}.Current())
}

func TestSupersederConcurrentBegin(t *testing.T) {
	var s Superseder
	var wg sync.WaitGroup
	tickets := make(chan Ticket, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, tk := s.Begin(context.Background())
			tickets <- tk
		}()
	}
	wg.Wait()
	close(tickets)
	current := 0
	for tk := range tickets {
		if tk.Current() {
			current++
		}
	}
	assert.Equal(t, 1, current)
	s.Stop()
}

func TestRunLatestDropsSupersededSearch(t *testing.T) {
	gate := make(chan struct{})
	tr := testutil.NewTransport().
		Enqueue(testutil.Response{Status: http.StatusOK, Body: `{"data":[{"id":1,"name":"wa"}]}`, Gate: gate}).
		EnqueueJSON(http.StatusOK, map[string]any{"data": []any{map[string]any{"id": 2, "name": "water"}}})
	client := newTransportClient(t, tr, nil)
	var s Superseder
	defer s.Stop()

	search := func(term string) func(context.Context) ([]NGO, error) {
		return func(ctx context.Context) ([]NGO, error) {
			env, err := client.NGOs.Search(ctx, NGOFilter{Search: term}, ListParams{})
			return env.Data, err
		}
	}

	type result struct {
		ngos []NGO
		ok   bool
		err  error
	}
	first := make(chan result, 1)
	go func() {
		ngos, ok, err := RunLatest(context.Background(), &s, search("wa"))
		first <- result{ngos, ok, err}
	}()
	<-tr.Seen()

	ngos, ok, err := RunLatest(context.Background(), &s, search("water"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, ngos, 1)
	assert.Equal(t, "water", ngos[0].Name)

	close(gate)
	stale := <-first
	assert.False(t, stale.ok)
	assert.NoError(t, stale.err)
	assert.Nil(t, stale.ngos)
}

func TestRunLatestReportsErrorsOfCurrentCall(t *testing.T) {
	var s Superseder
	defer s.Stop()
	boom := errors.New("boom")
	_, ok, err := RunLatest(context.Background(), &s, func(context.Context) (int, error) { return 0, boom })
	assert.True(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestRunLatestCancelsContextWhenDone(t *testing.T) {
	var s Superseder
	var runCtx context.Context
	got, ok, err := RunLatest(context.Background(), &s, func(ctx context.Context) (string, error) {
		runCtx = ctx
		return "done", ctx.Err()
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "done", got)
	assert.ErrorIs(t, runCtx.Err(), context.Canceled)

	// A finished generation must not disturb the next one.
	ctx, ticket := s.Begin(context.Background())
	assert.True(t, ticket.Current())
	assert.NoError(t, ctx.Err())
	s.Stop()
}
