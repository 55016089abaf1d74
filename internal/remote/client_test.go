// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-atlas/internal/httputil"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func testClient(baseURL string) *Client {
	c := New(types.RemoteConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "scholar-atlas-test/0.1",
		},
		BaseURL: baseURL,
		APIKey:  "rk_test",
	})
	return c
}

func TestSearchDecodesReport(t *testing.T) {
	var gotBody searchRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "Bearer rk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(types.SearchReport{
			Query: gotBody.Query,
			Depth: gotBody.Depth,
			Matches: []types.Match{
				{Scholar: types.Scholar{Name: "Michel Foucault"}, Score: 6, Relevance: 100},
			},
			Summary: "1 matches and 0 inferred relations; strongest match: Michel Foucault",
		})
	}))
	defer ts.Close()

	report, err := testClient(ts.URL).Search(context.Background(), "power", types.DepthDeep)
	require.NoError(t, err)

	assert.Equal(t, searchRequest{Query: "power", Depth: types.DepthDeep}, gotBody)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, "Michel Foucault", report.Matches[0].Scholar.Name)
	assert.Equal(t, types.DepthDeep, report.Depth)
}

func TestSearchNon200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).Search(context.Background(), "", types.DepthBasic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
}

func TestSearchRetriesRateLimit(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(types.SearchReport{Summary: "no matches"})
	}))
	defer ts.Close()

	report, err := testClient(ts.URL).Search(context.Background(), "power", types.DepthBasic)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "no matches", report.Summary)
}
