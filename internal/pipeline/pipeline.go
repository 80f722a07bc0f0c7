package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/ppiankov/veritas/internal/cache"
	"github.com/ppiankov/veritas/internal/classify"
	"github.com/ppiankov/veritas/internal/entity"
	"github.com/ppiankov/veritas/internal/kb"
	"github.com/ppiankov/veritas/internal/llm"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/nlp"
	"github.com/ppiankov/veritas/internal/relex"
	"github.com/ppiankov/veritas/internal/validate"
	"github.com/ppiankov/veritas/internal/verify"
	"github.com/ppiankov/veritas/internal/worker"
)

const emptyAnswerMessage = "answer makes no sense (the model returned an empty response)"
const unparseablePolarityMessage = "answer makes no sense (no affirmative or negative statement found)"

// Deps are the pipeline's collaborators. All of them are interfaces or
// self-contained values so tests can substitute mocks.
type Deps struct {
	Generator  llm.Provider
	Parser     nlp.Parser
	Recognizer *entity.Recognizer
	Linker     *entity.Linker
	AnswerExt  *entity.AnswerExtractor
	Polarity   *classify.PolarityExtractor
	Relex      relex.Generator
	Verifier   *verify.Verifier
	Prober     *validate.Prober // nil disables link probing
	Verbose    bool
}

// Pipeline resolves one question at a time: classify, extract the answer,
// link entities, decode and select a candidate fact, verify it. No state is
// shared across questions.
type Pipeline struct {
	deps Deps
}

// New creates a pipeline from explicit collaborators
func New(deps Deps) *Pipeline {
	return &Pipeline{deps: deps}
}

// NewFromConfig wires the full production pipeline
func NewFromConfig(cfg *model.Config) (*Pipeline, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy))
	if err != nil {
		return nil, fmt.Errorf("generation provider: %w", err)
	}

	parser := nlp.NewHTTPParser(cfg.NLP.ParserURL, cfg.NLP.Timeout)
	zeroShot := nlp.NewHTTPZeroShot(cfg.NLP.ZeroShotURL, cfg.NLP.Timeout)
	relexGen := relex.NewHTTPGenerator(cfg.NLP.RelexURL, cfg.NLP.Timeout)

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)

	kbOpts := []kb.Option{kb.WithLimiter(limiter)}
	if cfg.Cache.Enabled {
		var store cache.Cache
		if cfg.Cache.Dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		} else {
			store = cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*cfg.Cache.MemoryTTL)
		}
		kbOpts = append(kbOpts, kb.WithCache(store, cfg.Cache.MemoryTTL))
	}
	if cfg.HTTP.HTTPProxy != "" || cfg.HTTP.HTTPSProxy != "" {
		kbOpts = append(kbOpts, kb.WithProxy(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy))
	}

	kbClient := kb.NewClient(cfg.KB, cfg.HTTP.Timeout, cfg.HTTP.UserAgent, kbOpts...)
	sparql := kb.NewSPARQLClient(cfg.KB.SPARQLEndpoint, cfg.HTTP.Timeout, cfg.HTTP.UserAgent, limiter)

	var prober *validate.Prober
	if cfg.Probe.Enabled {
		prober = validate.NewProber(cfg.Probe.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, 5,
			cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	}

	return New(Deps{
		Generator:  provider,
		Parser:     parser,
		Recognizer: entity.NewRecognizer(parser),
		Linker:     entity.NewLinker(kbClient, cfg.Output.Verbose),
		AnswerExt:  entity.NewAnswerExtractor(parser),
		Polarity:   classify.NewPolarityExtractor(zeroShot),
		Relex:      relexGen,
		Verifier:   verify.NewVerifier(kbClient, sparql, cfg.Output.Verbose),
		Prober:     prober,
		Verbose:    cfg.Output.Verbose,
	}), nil
}

// Process resolves one question into a verification record. It never returns
// an error: every failure is recorded as data and the batch moves on.
func (p *Pipeline) Process(ctx context.Context, q model.Question) *model.VerificationRecord {
	rec := &model.VerificationRecord{
		QuestionID: q.ID,
		Answer:     "N/A",
		Verdict:    model.VerdictNA,
	}

	raw, err := p.deps.Generator.Generate(ctx, q.Text)
	if err != nil {
		p.warnf("generation failed for %s: %v", q.ID, err)
		raw = ""
	}
	rec.RawAnswer = raw

	answer := strings.TrimLeftFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	if answer == "" {
		rec.Empty = true
		rec.Answer = emptyAnswerMessage
		return rec
	}

	qdoc, err := p.deps.Parser.Parse(ctx, q.Text)
	if err != nil {
		p.warnf("question parse failed for %s: %v", q.ID, err)
		rec.Answer = fmt.Sprintf("question could not be parsed (%v)", err)
		return rec
	}

	answerType := classify.AnswerType(qdoc)

	rec.Entities = p.linkText(ctx, q.Text)
	answerLinked := p.linkText(ctx, answer)
	rec.Entities = append(rec.Entities, answerLinked...)

	factText := q.Text
	var polarity model.Polarity

	switch answerType {
	case model.AnswerTypePolarity:
		polarity = p.deps.Polarity.Extract(ctx, answer)
		if polarity == model.PolarityUnparseable {
			rec.Answer = unparseablePolarityMessage
		} else {
			rec.Answer = string(polarity)
		}

	case model.AnswerTypeEntity:
		extracted, err := p.deps.AnswerExt.Extract(ctx, answer, answerLinked)
		if err != nil {
			// Unresolvable reference: record the reason, skip the check
			rec.Answer = err.Error()
			return rec
		}
		rec.Answer = extracted.Label
		factText = q.Text + " " + extracted.Text
	}

	verified := p.verifyFact(ctx, rec, factText)

	if answerType == model.AnswerTypePolarity {
		rec.Verdict = verdict(verified && polarity == model.PolarityYes)
	} else {
		rec.Verdict = verdict(verified)
	}

	if p.deps.Prober != nil {
		rec.LinkProbe = p.deps.Prober.Probe(ctx, rec.Entities)
	}

	return rec
}

// linkText recognizes and links the filtered mentions of a text. Failures
// degrade to an empty list.
func (p *Pipeline) linkText(ctx context.Context, text string) []model.LinkedEntity {
	spans, err := p.deps.Recognizer.Recognize(ctx, text)
	if err != nil {
		p.warnf("entity recognition failed: %v", err)
		return nil
	}
	return p.deps.Linker.Link(ctx, entity.Mentions(spans))
}

// verifyFact decodes the relation stream for the fact text, selects the
// candidate triplet and checks it against the knowledge graph.
func (p *Pipeline) verifyFact(ctx context.Context, rec *model.VerificationRecord, factText string) bool {
	stream, err := p.deps.Relex.GenerateTriplets(ctx, factText)
	if err != nil {
		p.warnf("relation extraction failed: %v", err)
		return false
	}

	triplets := relex.Decode(stream)

	subjectOf := func(ctx context.Context, text string) (string, error) {
		a, err := p.deps.AnswerExt.ExtractSubject(ctx, text)
		if err != nil {
			return "", err
		}
		return a.Text, nil
	}

	fact, err := relex.Select(ctx, triplets, rec.Entities, factText, subjectOf)
	if err != nil {
		return false
	}
	rec.Fact = &fact

	return p.deps.Verifier.Check(ctx, fact)
}

func verdict(correct bool) model.Verdict {
	if correct {
		return model.VerdictCorrect
	}
	return model.VerdictIncorrect
}

func (p *Pipeline) warnf(format string, args ...interface{}) {
	if p.deps.Verbose {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	}
}
