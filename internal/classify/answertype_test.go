package classify

import (
	"testing"

	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/nlp"
)

func TestAnswerType_AuxRoot(t *testing.T) {
	// "Is Paris the capital of France?"
	doc := &nlp.Document{
		Tokens: []nlp.Token{
			{Index: 0, Text: "Is", Lemma: "is", POS: "AUX", Dep: "ROOT", IsAlpha: true},
			{Index: 1, Text: "Paris", Lemma: "Paris", POS: "PROPN", Dep: "nsubj", IsAlpha: true},
			{Index: 2, Text: "the", Lemma: "the", POS: "DET", Dep: "det", IsAlpha: true},
			{Index: 3, Text: "capital", Lemma: "capital", POS: "NOUN", Dep: "attr", IsAlpha: true},
		},
	}

	if got := AnswerType(doc); got != model.AnswerTypePolarity {
		t.Errorf("expected polarity, got %s", got)
	}
}

func TestAnswerType_WhWord(t *testing.T) {
	// "What is the capital of France?"
	doc := &nlp.Document{
		Tokens: []nlp.Token{
			{Index: 0, Text: "What", Lemma: "what", POS: "PRON", Dep: "attr", IsAlpha: true},
			{Index: 1, Text: "is", Lemma: "be", POS: "AUX", Dep: "ROOT", IsAlpha: true},
			{Index: 2, Text: "the", Lemma: "the", POS: "DET", Dep: "det", IsAlpha: true},
			{Index: 3, Text: "capital", Lemma: "capital", POS: "NOUN", Dep: "nsubj", IsAlpha: true},
		},
	}

	if got := AnswerType(doc); got != model.AnswerTypeEntity {
		t.Errorf("expected entity, got %s", got)
	}
}

func TestAnswerType_AuxRootWinsOverWhWord(t *testing.T) {
	// The auxiliary-root check is decided before the wh-word scan
	doc := &nlp.Document{
		Tokens: []nlp.Token{
			{Index: 0, Text: "Does", Lemma: "does", POS: "AUX", Dep: "ROOT", IsAlpha: true},
			{Index: 1, Text: "who", Lemma: "who", POS: "PRON", Dep: "nsubj", IsAlpha: true},
		},
	}

	if got := AnswerType(doc); got != model.AnswerTypePolarity {
		t.Errorf("expected polarity, got %s", got)
	}
}

func TestAnswerType_WhWordSubject(t *testing.T) {
	// "Who wrote Hamlet?"
	doc := &nlp.Document{
		Tokens: []nlp.Token{
			{Index: 0, Text: "Who", Lemma: "who", POS: "PRON", Dep: "nsubj", IsAlpha: true},
			{Index: 1, Text: "wrote", Lemma: "write", POS: "VERB", Dep: "ROOT", IsAlpha: true},
			{Index: 2, Text: "Hamlet", Lemma: "Hamlet", POS: "PROPN", Dep: "dobj", IsAlpha: true},
		},
	}

	if got := AnswerType(doc); got != model.AnswerTypeEntity {
		t.Errorf("expected entity, got %s", got)
	}
}

func TestAnswerType_WhWordWrongDepIgnored(t *testing.T) {
	// A wh-word outside attr/nsubj positions does not make an entity question
	doc := &nlp.Document{
		Tokens: []nlp.Token{
			{Index: 0, Text: "Tell", Lemma: "tell", POS: "VERB", Dep: "ROOT", IsAlpha: true},
			{Index: 1, Text: "me", Lemma: "I", POS: "PRON", Dep: "dobj", IsAlpha: true},
			{Index: 2, Text: "what", Lemma: "what", POS: "PRON", Dep: "dobj", IsAlpha: true},
		},
	}

	if got := AnswerType(doc); got != model.AnswerTypePolarity {
		t.Errorf("expected polarity fallback, got %s", got)
	}
}

func TestAnswerType_NoRoot(t *testing.T) {
	doc := &nlp.Document{Tokens: []nlp.Token{
		{Index: 0, Text: "France", Lemma: "France", POS: "PROPN", Dep: "dep", IsAlpha: true},
	}}

	if got := AnswerType(doc); got != model.AnswerTypePolarity {
		t.Errorf("expected polarity fallback, got %s", got)
	}
}
