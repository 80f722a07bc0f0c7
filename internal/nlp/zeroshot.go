package nlp

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

// LabelScore is a candidate label with its classifier confidence
type LabelScore struct {
	Label string
	Score float64
}

// ZeroShotClassifier ranks candidate labels for a text. The first returned
// entry is the top-ranked label.
type ZeroShotClassifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]LabelScore, error)
}

// HTTPZeroShot talks to a HuggingFace-style zero-shot classification endpoint
type HTTPZeroShot struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPZeroShot creates a zero-shot classifier client
func NewHTTPZeroShot(endpoint string, timeout time.Duration) *HTTPZeroShot {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPZeroShot{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type zeroShotRequest struct {
	Sequence        string   `json:"sequence"`
	CandidateLabels []string `json:"candidate_labels"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify submits the text and candidate labels, returning labels ranked by
// descending score as the endpoint produced them.
func (z *HTTPZeroShot) Classify(ctx context.Context, text string, labels []string) ([]LabelScore, error) {
	body, err := json.Marshal(zeroShotRequest{Sequence: text, CandidateLabels: labels})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, z.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed zeroShotResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Labels) != len(parsed.Scores) {
		return nil, fmt.Errorf("classifier returned %d labels but %d scores", len(parsed.Labels), len(parsed.Scores))
	}

	ranked := make([]LabelScore, len(parsed.Labels))
	for i := range parsed.Labels {
		ranked[i] = LabelScore{Label: parsed.Labels[i], Score: parsed.Scores[i]}
	}

	return ranked, nil
}
