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

// Parser produces a parsed Document for a text. Implementations must be safe
// for concurrent use; each call returns a fresh Document.
type Parser interface {
	Parse(ctx context.Context, text string) (*Document, error)
}

// HTTPParser talks to a spaCy-compatible sidecar exposing a /parse endpoint.
// The sidecar returns tokens with lemma, POS and dependency annotations plus
// entity and sentence spans.
type HTTPParser struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPParser creates a parser client for the given endpoint
func NewHTTPParser(endpoint string, timeout time.Duration) *HTTPParser {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &HTTPParser{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

// Parse sends the text to the sidecar and decodes the annotated document
func (p *HTTPParser) Parse(ctx context.Context, text string) (*Document, error) {
	body, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("parser returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.Text == "" {
		doc.Text = text
	}

	return &doc, nil
}
