package ghstats

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url, token string) *Client {
	c := NewClient(url, token)
	c.backoff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	}
	return c
}

func TestCount(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, `{"total_count": 42, "incomplete_results": false, "items": []}`)
	}))
	defer srv.Close()

	n, err := testClient(srv.URL, "secret").Count(context.Background(), KindIssues, "type:pr author:octocat")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.Equal(t, "/search/issues", gotPath)
	assert.Equal(t, "type:pr author:octocat", gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/vnd.github+json", gotAccept)
}

func TestCount_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"total_count": 1}`)
	}))
	defer srv.Close()

	n, err := testClient(srv.URL, "").Count(context.Background(), KindCommits, "author:octocat")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCount_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{"total_count": 7}`)
	}))
	defer srv.Close()

	n, err := testClient(srv.URL, "").Count(context.Background(), KindIssues, "q")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCount_RateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, "").Count(context.Background(), KindIssues, "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(3), calls.Load())
}

func TestCount_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "Validation Failed"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, "").Count(context.Background(), KindIssues, "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Validation Failed")
	assert.Equal(t, int32(1), calls.Load())
}

func TestCount_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, "").Count(context.Background(), KindIssues, "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding search response")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, DefaultBaseURL, c.baseURL)

	c = NewClient("https://ghe.example.com/api/v3/", "")
	assert.Equal(t, "https://ghe.example.com/api/v3", c.baseURL)
}

func TestCollect(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		mu.Lock()
		queries = append(queries, r.URL.Path+" "+q)
		mu.Unlock()
		fmt.Fprintf(w, `{"total_count": %d}`, len(q)%10)
	}))
	defer srv.Close()

	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	report, err := Collect(context.Background(), testClient(srv.URL, ""), Params{
		User:  "octocat",
		Since: since,
		Orgs:  []string{"acme", "widgets"},
	})
	require.NoError(t, err)

	require.Len(t, report.Rows, len(metrics))
	require.Len(t, queries, len(metrics))
	assert.Equal(t, "/search/issues type:pr author:octocat created:>=2025-01-01 org:acme org:widgets", queries[0])
	assert.Equal(t, "/search/issues type:pr reviewed-by:octocat -author:octocat updated:>=2025-01-01 org:acme org:widgets", queries[2])
	assert.Equal(t, "/search/commits author:octocat committer-date:>=2025-01-01 org:acme org:widgets", queries[4])

	total := 0
	for _, row := range report.Rows {
		total += row.Count
	}
	assert.Equal(t, total, report.Total())
}

func TestCollect_RequiresUser(t *testing.T) {
	_, err := Collect(context.Background(), NewClient("", ""), Params{})
	assert.Error(t, err)
}

func TestCollect_StopsOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Collect(context.Background(), testClient(srv.URL, ""), Params{User: "octocat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pull requests opened")
}

func TestReportWrite(t *testing.T) {
	r := Report{
		User:  "octocat",
		Since: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Rows:  []Row{{"Pull requests opened", 12}, {"Commits authored", 30}},
	}

	var buf bytes.Buffer
	r.Write(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	require.Len(t, lines, 4)
	assert.Equal(t, "GitHub contributions for octocat since 2025-01-01", lines[0])
	assert.Contains(t, lines[1], "Pull requests opened")
	assert.True(t, strings.HasSuffix(lines[3], "42"))
}
