package validate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/util"
	"golang.org/x/net/html"
)

// Prober checks that linked entities point at live articles that actually
// mention the canonical label. A dead or mismatched article is a sign the
// popularity heuristic picked the wrong candidate; the probe result is
// diagnostic only and never changes a verdict.
type Prober struct {
	httpClient *http.Client
	robots     *RobotsChecker
	userAgent  string
	maxBytes   int64
	maxWorkers int
}

// NewProber creates a link prober
func NewProber(timeout time.Duration, userAgent string, maxBytes int64, maxWorkers int, httpProxy, httpsProxy, noProxy string) *Prober {
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	return &Prober{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		robots:     NewRobotsChecker(userAgent, timeout),
		userAgent:  userAgent,
		maxBytes:   maxBytes,
		maxWorkers: maxWorkers,
	}
}

// Probe checks all resolved entities concurrently. Entities without a URL
// are skipped.
func (p *Prober) Probe(ctx context.Context, entities []model.LinkedEntity) []model.LinkStatus {
	var targets []model.LinkedEntity
	for _, e := range entities {
		if e.URL != "" {
			targets = append(targets, e)
		}
	}
	if len(targets) == 0 {
		return nil
	}

	results := make([]model.LinkStatus, len(targets))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.maxWorkers)

	for i, e := range targets {
		wg.Add(1)
		go func(idx int, ent model.LinkedEntity) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.LinkStatus{URL: ent.URL, Label: ent.Label, Error: "context cancelled"}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = p.probeSingle(ctx, ent)
		}(i, e)
	}

	wg.Wait()

	return results
}

func (p *Prober) probeSingle(ctx context.Context, ent model.LinkedEntity) model.LinkStatus {
	status := model.LinkStatus{URL: ent.URL, Label: ent.Label}

	allowed, err := p.robots.CanFetch(ctx, ent.URL)
	if err == nil && !allowed {
		status.Error = "blocked by robots.txt"
		return status
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ent.URL, nil)
	if err != nil {
		status.Error = fmt.Sprintf("create request: %v", err)
		return status
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		status.Error = fmt.Sprintf("request failed: %v", err)
		return status
	}
	defer func() { _ = resp.Body.Close() }()

	status.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return status
	}
	status.IsAccessible = true

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes))
	if err != nil {
		status.Error = fmt.Sprintf("read body: %v", err)
		return status
	}

	text, err := visibleText(string(body))
	if err != nil {
		status.Error = fmt.Sprintf("parse html: %v", err)
		return status
	}

	status.LabelFound = strings.Contains(strings.ToLower(text), strings.ToLower(ent.Label))

	return status
}

// visibleText extracts text nodes from HTML, skipping scripts and styles
func visibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}
