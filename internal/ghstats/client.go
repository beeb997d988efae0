// Package ghstats counts a user's GitHub contributions through the search API.
package ghstats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/cchawn/toolbox/internal/logger"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// ErrRateLimited is returned once retries are exhausted on a rate limit.
var ErrRateLimited = errors.New("github rate limit exceeded")

// Kind selects the search endpoint.
type Kind string

const (
	KindIssues  Kind = "issues"
	KindCommits Kind = "commits"
)

// Client is a minimal GitHub search client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	backoff func() backoff.BackOff
}

// NewClient returns a Client. An empty token sends unauthenticated requests,
// which GitHub limits far more aggressively.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxElapsedTime = 2 * time.Minute
			return b
		},
	}
}

type searchResponse struct {
	TotalCount        int  `json:"total_count"`
	IncompleteResults bool `json:"incomplete_results"`
}

// Count returns the total_count of a search query.
func (c *Client) Count(ctx context.Context, kind Kind, query string) (int, error) {
	log := logger.FromContext(ctx)

	var resp searchResponse
	op := func() error {
		var err error
		resp, err = c.search(ctx, kind, query)
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("wait", wait).Str("query", query).Msg("retrying github search")
	}

	b := backoff.WithContext(c.backoff(), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		return 0, fmt.Errorf("searching %s %q: %w", kind, query, err)
	}
	if resp.IncompleteResults {
		log.Warn().Str("query", query).Msg("github reported incomplete results")
	}
	return resp.TotalCount, nil
}

func (c *Client) search(ctx context.Context, kind Kind, query string) (searchResponse, error) {
	params := url.Values{"q": {query}, "per_page": {"1"}}
	uri := fmt.Sprintf("%s/search/%s?%s", c.baseURL, kind, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return searchResponse{}, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return searchResponse{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return searchResponse{}, err
	}

	switch {
	case res.StatusCode == http.StatusOK:
	case isRateLimited(res):
		return searchResponse{}, fmt.Errorf("%w: %s", ErrRateLimited, res.Status)
	case res.StatusCode >= 500:
		return searchResponse{}, fmt.Errorf("github: %s", res.Status)
	default:
		return searchResponse{}, backoff.Permanent(fmt.Errorf("github: %s: %s", res.Status, strings.TrimSpace(string(body))))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return searchResponse{}, backoff.Permanent(fmt.Errorf("decoding search response: %w", err))
	}
	return out, nil
}

func isRateLimited(res *http.Response) bool {
	if res.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return res.StatusCode == http.StatusForbidden && res.Header.Get("X-RateLimit-Remaining") == "0"
}
