package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/nlp"
)

// Extraction errors are data: the pipeline records the message as the
// extracted answer so failures stay auditable in the output corpus.
var (
	ErrNoEntitiesNoSubject = errors.New("answer makes no sense (there are no named entities and no nominal subject)")
	ErrNoEntitiesPassive   = errors.New("answer makes no sense (there are no named entities but there is a passive nominal subject)")
	ErrNoEntitiesActive    = errors.New("answer makes no sense (there are no named entities but there is a nominal subject)")
)

// Answer is the entity extracted from a free-text answer
type Answer struct {
	Text  string // Surface text selected from the answer
	Label string // Canonical label, or Text when no canonical form matched
	URL   string // Canonical URL, empty when unresolved
}

// AnswerExtractor determines which entity a free-text answer is about
type AnswerExtractor struct {
	parser nlp.Parser
}

// NewAnswerExtractor creates an answer-entity extractor
func NewAnswerExtractor(parser nlp.Parser) *AnswerExtractor {
	return &AnswerExtractor{parser: parser}
}

// Extract selects the answer entity and resolves it against the linked
// entities already computed for the answer text. Multi-sentence answers are
// scanned sentence by sentence, earliest valid result first, because longer
// answers front-load the direct answer.
func (a *AnswerExtractor) Extract(ctx context.Context, answer string, linked []model.LinkedEntity) (Answer, error) {
	doc, err := a.parser.Parse(ctx, answer)
	if err != nil {
		return Answer{}, fmt.Errorf("parse answer: %w", err)
	}

	sents := doc.SentenceSpans()
	if len(sents) >= 2 {
		for _, sent := range sents {
			if res, err := a.extractFromSpan(doc, sent, linked); err == nil {
				return res, nil
			}
		}
	}

	whole := nlp.Sentence{Start: 0, End: len(doc.Tokens), Text: strings.TrimSpace(answer)}
	return a.extractFromSpan(doc, whole, linked)
}

// ExtractSubject is the entity-unaware mode used by the fact-selector
// fallback: the same selection algorithm with no linked entities, so the raw
// selected text comes back unresolved.
func (a *AnswerExtractor) ExtractSubject(ctx context.Context, text string) (Answer, error) {
	return a.Extract(ctx, text, nil)
}

func (a *AnswerExtractor) extractFromSpan(doc *nlp.Document, span nlp.Sentence, linked []model.LinkedEntity) (Answer, error) {
	// One-word answers are the entity, no syntax needed
	if doc.AlphaCount(span.Start, span.End) == 1 {
		return resolve(strings.TrimSpace(span.Text), linked), nil
	}

	var active, passive *nlp.Token
	active = doc.FirstDep("nsubj", span.Start, span.End)
	if active == nil {
		passive = doc.FirstDep("nsubjpass", span.Start, span.End)
	}

	mentions := FilteredSpans(doc.EntitiesIn(span.Start, span.End))

	switch {
	case active == nil && passive == nil:
		if len(mentions) == 0 {
			return Answer{}, ErrNoEntitiesNoSubject
		}
		return resolve(mentions[0].Text, linked), nil

	case passive != nil:
		if len(mentions) == 0 {
			return Answer{}, ErrNoEntitiesPassive
		}
		return resolve(NearestMention(passive, mentions).Text, linked), nil

	default:
		if len(mentions) == 0 {
			return Answer{}, ErrNoEntitiesActive
		}
		return resolve(NearestMention(active, mentions).Text, linked), nil
	}
}

// NearestMention selects the mention with minimum token-index distance to the
// subject, ties broken by document order. Proximity to the subject is a cheap
// syntactic proxy for what the sentence is about.
func NearestMention(subject *nlp.Token, mentions []nlp.Span) nlp.Span {
	best := mentions[0]
	bestDist := distance(subject.Index, best.Start)
	for _, m := range mentions[1:] {
		if d := distance(subject.Index, m.Start); d < bestDist {
			best = m
			bestDist = d
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// resolve maps the selected text to a canonical form. Substring containment
// in either direction tolerates casing and partial-mention mismatches between
// the NER output and knowledge-base labels.
func resolve(selected string, linked []model.LinkedEntity) Answer {
	for _, e := range linked {
		if e.Label == "" {
			continue
		}
		if strings.Contains(e.Label, selected) || strings.Contains(selected, e.Label) {
			return Answer{Text: selected, Label: e.Label, URL: e.URL}
		}
	}

	// The raw mention may match where the cleaned label did not
	// (e.g. "apple" against "AAPL")
	for _, e := range linked {
		if strings.Contains(e.Mention, selected) || strings.Contains(selected, e.Mention) {
			label := e.Label
			if label == "" {
				label = e.Mention
			}
			return Answer{Text: selected, Label: label, URL: e.URL}
		}
	}

	return Answer{Text: selected, Label: selected}
}
