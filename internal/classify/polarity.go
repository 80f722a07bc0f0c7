package classify

import (
	"context"
	"strings"

	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/nlp"
)

// polarityThreshold is the minimum classifier confidence for accepting a
// zero-shot label on answers that carry no literal yes/no prefix.
const polarityThreshold = 0.6

// PolarityExtractor extracts a yes/no judgment from free-text answers.
// The prefix fast path resolves the common case; the zero-shot classifier
// is only invoked on a miss because it is expensive.
type PolarityExtractor struct {
	classifier nlp.ZeroShotClassifier
}

// NewPolarityExtractor creates a polarity extractor backed by the classifier
func NewPolarityExtractor(classifier nlp.ZeroShotClassifier) *PolarityExtractor {
	return &PolarityExtractor{classifier: classifier}
}

// Extract returns yes, no, or unparseable for the answer text
func (p *PolarityExtractor) Extract(ctx context.Context, answer string) model.Polarity {
	trimmed := strings.ToLower(strings.TrimSpace(answer))
	if strings.HasPrefix(trimmed, "yes") {
		return model.PolarityYes
	}
	if strings.HasPrefix(trimmed, "no") {
		return model.PolarityNo
	}

	if p.classifier == nil {
		return model.PolarityUnparseable
	}

	ranked, err := p.classifier.Classify(ctx, answer, []string{"yes", "no"})
	if err != nil || len(ranked) == 0 {
		// External-call failure counts as "no result" for this call
		return model.PolarityUnparseable
	}

	if ranked[0].Score > polarityThreshold {
		switch ranked[0].Label {
		case "yes":
			return model.PolarityYes
		case "no":
			return model.PolarityNo
		}
	}

	return model.PolarityUnparseable
}
