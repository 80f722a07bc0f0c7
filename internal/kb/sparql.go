package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/veritas/internal/worker"
)

// SPARQLClient issues boolean ASK queries against a knowledge-graph endpoint
type SPARQLClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *worker.Limiter
	userAgent  string
}

// NewSPARQLClient creates a SPARQL client
func NewSPARQLClient(endpoint string, timeout time.Duration, userAgent string, limiter *worker.Limiter) *SPARQLClient {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &SPARQLClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:   limiter,
		userAgent: userAgent,
	}
}

type askResponse struct {
	Boolean bool `json:"boolean"`
}

// Ask checks whether subject -relation-> object holds in the graph.
// Identifiers are knowledge-base IDs (Q… for entities, P… for properties).
func (c *SPARQLClient) Ask(ctx context.Context, subjectID, propertyID, objectID string) (bool, error) {
	query := fmt.Sprintf("ASK { wd:%s wdt:%s wd:%s . }", subjectID, propertyID, objectID)

	params := url.Values{
		"query":  {query},
		"format": {"json"},
	}
	reqURL := c.endpoint + "?" + params.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, reqURL); err != nil {
			return false, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("sparql request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("sparql returned %d", resp.StatusCode)
	}

	var parsed askResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("decode ask response: %w", err)
	}

	return parsed.Boolean, nil
}
