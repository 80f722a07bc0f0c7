package entity

import (
	"context"
	"fmt"

	"github.com/ppiankov/veritas/internal/nlp"
)

// droppedLabels are entity classes with no stable knowledge-base identity.
// Mentions of these classes never reach the linker.
var droppedLabels = map[string]bool{
	"DATE":     true,
	"TIME":     true,
	"PERCENT":  true,
	"MONEY":    true,
	"QUANTITY": true,
	"ORDINAL":  true,
	"CARDINAL": true,
}

// Recognizer wraps the external NER engine and filters out numeric and
// temporal entity classes.
type Recognizer struct {
	parser nlp.Parser
}

// NewRecognizer creates a recognizer over the parser
func NewRecognizer(parser nlp.Parser) *Recognizer {
	return &Recognizer{parser: parser}
}

// Recognize parses the text and returns filtered mentions in document order,
// duplicates preserved.
func (r *Recognizer) Recognize(ctx context.Context, text string) ([]nlp.Span, error) {
	doc, err := r.parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return FilteredSpans(doc.Entities), nil
}

// FilteredSpans drops spans whose entity class carries no knowledge-base
// identity, keeping document order.
func FilteredSpans(spans []nlp.Span) []nlp.Span {
	var out []nlp.Span
	for _, s := range spans {
		if droppedLabels[s.Label] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Mentions returns the surface texts of the spans
func Mentions(spans []nlp.Span) []string {
	out := make([]string, 0, len(spans))
	for _, s := range spans {
		out = append(out, s.Text)
	}
	return out
}
