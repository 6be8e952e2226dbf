package sdk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/myanmarcares/myanmarcares/sdk/go/auth"
	"github.com/myanmarcares/myanmarcares/sdk/go/testutil"
)

func newTestClient(t *testing.T, srv *httptest.Server, tokens auth.TokenSource) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    srv.URL,
		Tokens:     tokens,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err, "new test client")
	return client
}

func newTransportClient(t *testing.T, tr *testutil.Transport, tokens auth.TokenSource) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:    "http://cms.test",
		Tokens:     tokens,
		HTTPClient: tr.Client(),
	})
	require.NoError(t, err, "new transport client")
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

// legacyNGO builds an NGO in the attributes-nested wire shape.
func legacyNGO(f *gofakeit.Faker, id int) map[string]any {
	return map[string]any{
		"id": id,
		"attributes": map[string]any{
			"name":     f.Company(),
			"cause":    f.RandomString([]string{"Education", "Health", "Disaster Relief"}),
			"location": f.City(),
			"verified": f.Bool(),
			"raised":   f.Number(1000, 900000),
			"image": map[string]any{
				"data": map[string]any{
					"id":         id * 10,
					"attributes": map[string]any{"url": f.URL()},
				},
			},
		},
	}
}

func pagination(page, pageSize, pageCount, total int) map[string]any {
	return map[string]any{
		"pagination": map[string]any{
			"page":      page,
			"pageSize":  pageSize,
			"pageCount": pageCount,
			"total":     total,
		},
	}
}
