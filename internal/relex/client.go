package relex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator produces the control-token stream for a text. Implementations
// must be safe for concurrent use.
type Generator interface {
	GenerateTriplets(ctx context.Context, text string) (string, error)
}

// HTTPGenerator talks to a REBEL-style generation endpoint that returns the
// raw decoded token stream for the input text.
type HTTPGenerator struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPGenerator creates a relation-extraction client
func NewHTTPGenerator(endpoint string, timeout time.Duration) *HTTPGenerator {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPGenerator{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type generateRequest struct {
	Text string `json:"text"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
}

// GenerateTriplets returns the model's token stream, boundary markers included
func (g *HTTPGenerator) GenerateTriplets(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(generateRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generator returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return parsed.GeneratedText, nil
}
