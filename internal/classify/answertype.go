package classify

import (
	"strings"

	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/nlp"
)

// auxiliary lemmas whose presence at the root marks a yes/no question
var polarityRootLemmas = map[string]bool{
	"is":   true,
	"does": true,
	"are":  true,
	"was":  true,
	"were": true,
}

// wh-words that mark an entity question when they serve as subject or
// predicate attribute
var entityWhWords = map[string]bool{
	"who":   true,
	"what":  true,
	"where": true,
	"when":  true,
}

// AnswerType decides whether a question expects a polarity judgment or a
// named entity. Total over any parsed sentence: the auxiliary-root check
// wins over the wh-word check, and a rootless parse falls back to polarity.
func AnswerType(doc *nlp.Document) model.AnswerType {
	root := doc.Root()
	if root != nil && root.POS == "AUX" && polarityRootLemmas[root.Lemma] {
		return model.AnswerTypePolarity
	}

	for _, t := range doc.Tokens {
		if t.Dep != "attr" && t.Dep != "nsubj" {
			continue
		}
		if entityWhWords[strings.ToLower(t.Text)] {
			return model.AnswerTypeEntity
		}
	}

	return model.AnswerTypePolarity
}
