package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	NLP         NLPConfig         `yaml:"nlp" json:"nlp"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	KB          KBConfig          `yaml:"kb" json:"kb"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" json:"rate_limit"`
	Probe       ProbeConfig       `yaml:"probe" json:"probe"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// HTTPConfig holds shared HTTP client settings
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy" json:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" json:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" json:"no_proxy"`
}

// NLPConfig points at the NLP sidecar services
type NLPConfig struct {
	ParserURL   string        `yaml:"parser_url" json:"parser_url"`     // spaCy-compatible /parse endpoint
	ZeroShotURL string        `yaml:"zeroshot_url" json:"zeroshot_url"` // zero-shot /classify endpoint
	RelexURL    string        `yaml:"relex_url" json:"relex_url"`       // relation-extraction /generate endpoint
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// LLMConfig configures the answer-generation provider
type LLMConfig struct {
	Provider  string   `yaml:"provider" json:"provider"` // openai, anthropic, ollama
	Model     string   `yaml:"model" json:"model"`
	APIKey    string   `yaml:"-" json:"-"` // Never serialized
	BaseURL   string   `yaml:"base_url" json:"base_url"`
	Timeout   int      `yaml:"timeout" json:"timeout"` // seconds
	MaxTokens int      `yaml:"max_tokens" json:"max_tokens"`
	Stop      []string `yaml:"stop" json:"stop"` // Stop sequences for generation
}

// KBConfig configures the knowledge-base and knowledge-graph endpoints
type KBConfig struct {
	APIBase        string `yaml:"api_base" json:"api_base"`
	SPARQLEndpoint string `yaml:"sparql_endpoint" json:"sparql_endpoint"`
	Language       string `yaml:"language" json:"language"`
	SearchLimit    int    `yaml:"search_limit" json:"search_limit"`
}

// CacheConfig configures knowledge-base lookup memoization
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"` // Empty: memory only
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// RateLimitConfig throttles outbound knowledge-base calls per host
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" json:"burst_size"`
}

// ProbeConfig controls optional probing of linked entity URLs
type ProbeConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig controls reporting
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Veritas/0.1 (+https://github.com/ppiankov/veritas)",
			MaxBodyBytes: 2_000_000,
		},
		NLP: NLPConfig{
			ParserURL:   "http://localhost:8070/parse",
			ZeroShotURL: "http://localhost:8071/classify",
			RelexURL:    "http://localhost:8072/generate",
			Timeout:     60 * time.Second,
		},
		LLM: LLMConfig{
			Provider:  "ollama",
			Model:     "llama2:7b",
			Timeout:   120,
			MaxTokens: 32,
			Stop:      []string{"Q:", "\n"},
		},
		KB: KBConfig{
			APIBase:        "https://www.wikidata.org/w/api.php",
			SPARQLEndpoint: "https://query.wikidata.org/sparql",
			Language:       "en",
			SearchLimit:    10,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Probe: ProbeConfig{
			Enabled: false,
			Timeout: 10 * time.Second,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
