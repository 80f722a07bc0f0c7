package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/pipeline"
	"github.com/ppiankov/veritas/internal/worker"
	"github.com/spf13/cobra"
)

var (
	outPath     string
	workers     int
	timeout     time.Duration
	nlpTimeout  time.Duration
	userAgent   string
	parserURL   string
	zeroShotURL string
	relexURL    string
	kbAPIBase   string
	sparqlURL   string
	noCache     bool
	cacheDir    string
	checkLinks  bool
	llmProvider string
	llmModel    string
	llmTimeout  int
	httpProxy   string
	httpsProxy  string
	noProxy     string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <questions-file>",
	Short: "Answer a question corpus and verify every answer",
	Long: `Run reads a tab-delimited question corpus, asks the configured language
model every question, and verifies each answer against the knowledge graph:
- Classify the expected answer shape (yes/no or named entity)
- Extract the answer polarity or its key entity
- Link mentions to canonical knowledge-base entries
- Decode a candidate (subject, relation, object) fact
- Issue a boolean entailment query and record the verdict

Example:
  veritas run questions.tsv
  veritas run questions.tsv --out answers.tsv --workers 4
  veritas run questions.tsv --llm-provider openai --llm-model gpt-4o-mini
  veritas run questions.tsv --check-links`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Output flags
	runCmd.Flags().StringVar(&outPath, "out", "answers.tsv", "output corpus path (appended)")

	// Concurrency flags
	runCmd.Flags().IntVar(&workers, "workers", 1, "questions resolved in parallel")

	// HTTP flags
	runCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "knowledge-base request timeout")
	runCmd.Flags().StringVar(&userAgent, "ua", "Veritas/0.1 (+https://github.com/ppiankov/veritas)", "HTTP User-Agent")
	runCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (also reads HTTP_PROXY)")
	runCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (also reads HTTPS_PROXY)")
	runCmd.Flags().StringVar(&noProxy, "no-proxy", "", "comma-separated hosts that bypass the proxy")

	// NLP sidecar flags
	runCmd.Flags().DurationVar(&nlpTimeout, "nlp-timeout", time.Minute, "NLP sidecar request timeout")
	runCmd.Flags().StringVar(&parserURL, "parser-url", "", "dependency parser endpoint (default from config)")
	runCmd.Flags().StringVar(&zeroShotURL, "zeroshot-url", "", "zero-shot classifier endpoint (default from config)")
	runCmd.Flags().StringVar(&relexURL, "relex-url", "", "relation extraction endpoint (default from config)")

	// Knowledge-base flags
	runCmd.Flags().StringVar(&kbAPIBase, "kb-api", "", "knowledge-base API endpoint (default from config)")
	runCmd.Flags().StringVar(&sparqlURL, "sparql", "", "SPARQL endpoint (default from config)")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable knowledge-base lookup cache")
	runCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "persist cached lookups to this directory")

	// Probe flags
	runCmd.Flags().BoolVar(&checkLinks, "check-links", false, "probe linked article URLs for liveness")

	// LLM flags
	runCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "generation provider (openai, anthropic, ollama; default from config)")
	runCmd.Flags().StringVar(&llmModel, "llm-model", "", "generation model name (default from config)")
	runCmd.Flags().IntVar(&llmTimeout, "llm-timeout", 0, "generation timeout in seconds (default from config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	questionsPath := args[0]

	cfg, err := buildRunConfig()
	if err != nil {
		return err
	}

	questions, err := pipeline.ReadQuestions(questionsPath)
	if err != nil {
		return fmt.Errorf("read questions: %w", err)
	}
	if len(questions) == 0 {
		return fmt.Errorf("no questions found in %s", questionsPath)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Questions: %d\n", len(questions))
		fmt.Fprintf(os.Stderr, "Provider: %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.Workers)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	writer, err := pipeline.NewRecordWriter(outPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer func() { _ = writer.Close() }()

	ctx := context.Background()

	batch := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	records := batch.Process(ctx, questions)

	verified := 0
	for _, rec := range records {
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if rec.Verdict == model.VerdictCorrect {
			verified++
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "%s\t%s\t%s\n", rec.QuestionID, rec.Answer, rec.Verdict)
		}
	}

	fmt.Fprintf(os.Stderr, "✓ Verified %d/%d answers as correct (%s)\n", verified, len(records), outPath)

	return nil
}

// buildRunConfig layers flags over the defaults and resolves provider credentials
func buildRunConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.HTTPProxy = firstNonEmpty(httpProxy, os.Getenv("HTTP_PROXY"))
	cfg.HTTP.HTTPSProxy = firstNonEmpty(httpsProxy, os.Getenv("HTTPS_PROXY"))
	cfg.HTTP.NoProxy = firstNonEmpty(noProxy, os.Getenv("NO_PROXY"))

	cfg.NLP.Timeout = nlpTimeout
	if parserURL != "" {
		cfg.NLP.ParserURL = parserURL
	}
	if zeroShotURL != "" {
		cfg.NLP.ZeroShotURL = zeroShotURL
	}
	if relexURL != "" {
		cfg.NLP.RelexURL = relexURL
	}

	if kbAPIBase != "" {
		cfg.KB.APIBase = kbAPIBase
	}
	if sparqlURL != "" {
		cfg.KB.SPARQLEndpoint = sparqlURL
	}

	cfg.Cache.Enabled = !noCache
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}

	cfg.Concurrency.Workers = workers
	cfg.Probe.Enabled = checkLinks
	cfg.Output.Verbose = verbose

	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if llmTimeout > 0 {
		cfg.LLM.Timeout = llmTimeout
	}

	// Get API key from environment
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
