package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ppiankov/veritas/internal/cache"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/util"
	"github.com/ppiankov/veritas/internal/worker"
)

// Client talks to a Wikidata-compatible MediaWiki action API. Lookups are
// pure functions of the search term, so results are memoized when a cache is
// attached. Safe for concurrent use.
type Client struct {
	apiBase     string
	language    string
	searchLimit int
	httpClient  *http.Client
	cache       cache.Cache
	cacheTTL    time.Duration
	limiter     *worker.Limiter
	userAgent   string
}

// Option configures the client
type Option func(*Client)

// WithCache memoizes search and fetch responses by term
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithLimiter throttles API calls per host
func WithLimiter(l *worker.Limiter) Option {
	return func(cl *Client) {
		cl.limiter = l
	}
}

// WithProxy routes API calls through the configured proxies
func WithProxy(httpProxy, httpsProxy, noProxy string) Option {
	return func(cl *Client) {
		cl.httpClient.Transport = &http.Transport{
			Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
		}
	}
}

// NewClient creates a knowledge-base client
func NewClient(cfg model.KBConfig, timeout time.Duration, userAgent string, opts ...Option) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	limit := cfg.SearchLimit
	if limit <= 0 {
		limit = 10
	}
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}

	c := &Client{
		apiBase:     cfg.APIBase,
		language:    lang,
		searchLimit: limit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type searchResponse struct {
	Search []struct {
		ID string `json:"id"`
	} `json:"search"`
}

type entitiesResponse struct {
	Entities map[string]struct {
		Labels map[string]struct {
			Value string `json:"value"`
		} `json:"labels"`
		Descriptions map[string]struct {
			Value string `json:"value"`
		} `json:"descriptions"`
		Claims    map[string]json.RawMessage `json:"claims"`
		Sitelinks map[string]struct {
			Title string `json:"title"`
		} `json:"sitelinks"`
	} `json:"entities"`
}

// SearchEntities returns up to searchLimit candidate entity identifiers for
// a mention, ranked by the API. An empty slice means no candidates.
func (c *Client) SearchEntities(ctx context.Context, mention string) ([]string, error) {
	params := url.Values{
		"action":   {"wbsearchentities"},
		"search":   {mention},
		"language": {c.language},
		"format":   {"json"},
		"limit":    {fmt.Sprintf("%d", c.searchLimit)},
	}
	return c.search(ctx, "entity-search", mention, params)
}

// SearchProperties returns candidate property identifiers for a relation label
func (c *Client) SearchProperties(ctx context.Context, label string) ([]string, error) {
	params := url.Values{
		"action":   {"wbsearchentities"},
		"type":     {"property"},
		"search":   {label},
		"language": {c.language},
		"format":   {"json"},
	}
	return c.search(ctx, "property-search", label, params)
}

func (c *Client) search(ctx context.Context, kind, term string, params url.Values) ([]string, error) {
	body, err := c.get(ctx, kind, term, params)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]string, 0, len(parsed.Search))
	for _, hit := range parsed.Search {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// FetchEntity retrieves the label, description, claim count, sitelink count
// and English article URL for an identifier.
func (c *Client) FetchEntity(ctx context.Context, id string) (*model.EntityInfo, error) {
	params := url.Values{
		"action":    {"wbgetentities"},
		"ids":       {id},
		"languages": {c.language},
		"format":    {"json"},
	}

	body, err := c.get(ctx, "entity-fetch", id, params)
	if err != nil {
		return nil, err
	}

	var parsed entitiesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode entity response: %w", err)
	}

	ent, ok := parsed.Entities[id]
	if !ok {
		return nil, fmt.Errorf("entity %s not in response", id)
	}

	info := &model.EntityInfo{
		ID:        id,
		Claims:    len(ent.Claims),
		Sitelinks: len(ent.Sitelinks),
	}
	if l, ok := ent.Labels[c.language]; ok {
		info.Label = l.Value
	}
	if d, ok := ent.Descriptions[c.language]; ok {
		info.Description = d.Value
	}
	if wiki, ok := ent.Sitelinks[c.language+"wiki"]; ok {
		info.URL = "https://" + c.language + ".wikipedia.org/wiki/" + url.PathEscape(wiki.Title)
	}

	return info, nil
}

// get performs a cached, rate-limited GET against the action API
func (c *Client) get(ctx context.Context, kind, term string, params url.Values) ([]byte, error) {
	key := cache.Key(kind, term)
	if c.cache != nil {
		if data, found := c.cache.Get(key); found {
			return data, nil
		}
	}

	reqURL := c.apiBase + "?" + params.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, reqURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4_000_000))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(key, body, c.cacheTTL)
	}

	return body, nil
}
