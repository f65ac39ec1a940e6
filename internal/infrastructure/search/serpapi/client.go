package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/avoronov/docqa/internal/core/domain"
	"github.com/avoronov/docqa/internal/infrastructure/resilience"
)

// Client queries the SerpAPI Google engine and flattens organic results into
// a text digest. Outbound calls are rate limited: the API is metered.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

func New(baseURL, apiKey string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
		executor:   executor,
	}
}

type organicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Search returns the ranked digest, one "title\nsnippet\nlink" block per
// result separated by blank lines. Zero organic results yield the literal
// no-results sentinel so callers can tell it apart from an outage.
func (c *Client) Search(ctx context.Context, query string, numResults int) (string, error) {
	if numResults <= 0 {
		numResults = 5
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", domain.WrapError(domain.ErrSearchUnavailable, "search rate wait", err)
	}

	var results []organicResult
	call := func(callCtx context.Context) error {
		var err error
		results, err = c.fetchOrganicResults(callCtx, query, numResults)
		return err
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "serpapi.search", call, classifySearchError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", domain.WrapError(domain.ErrSearchUnavailable, "serpapi search", err)
	}

	if len(results) == 0 {
		return domain.NoSearchResults, nil
	}

	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r.Title)
		sb.WriteString("\n")
		sb.WriteString(r.Snippet)
		sb.WriteString("\n")
		sb.WriteString(r.Link)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func (c *Client) fetchOrganicResults(ctx context.Context, query string, numResults int) ([]organicResult, error) {
	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(numResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, &statusError{
			statusCode: resp.StatusCode,
			status:     resp.Status,
			body:       strings.TrimSpace(string(raw)),
		}
	}

	var payload struct {
		OrganicResults []organicResult `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return payload.OrganicResults, nil
}

type statusError struct {
	statusCode int
	status     string
	body       string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("search status: %s", e.status)
	}
	return fmt.Sprintf("search status: %s: %s", e.status, e.body)
}
