package nlp

import "strings"

// Token is a single token with the annotations the pipeline relies on
type Token struct {
	Index   int    `json:"i"`
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`
	POS     string `json:"pos"`
	Dep     string `json:"dep"`
	IsAlpha bool   `json:"is_alpha"`
}

// Span is a contiguous token range, used for entity mentions.
// Start is inclusive, End exclusive, both token indices.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
	Label string `json:"label"` // Coarse entity type (PERSON, GPE, ORG, ...)
}

// Sentence is a sentence boundary over the token sequence
type Sentence struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Document is the normalized view of a parsed text, produced fresh per call
// by the external engine. Nothing in it is mutated after parsing.
type Document struct {
	Text      string     `json:"text"`
	Tokens    []Token    `json:"tokens"`
	Entities  []Span     `json:"ents"`
	Sentences []Sentence `json:"sents"`
}

// Root returns the first token carrying the ROOT dependency, or nil when the
// parse has no explicit root.
func (d *Document) Root() *Token {
	for i := range d.Tokens {
		if d.Tokens[i].Dep == "ROOT" {
			return &d.Tokens[i]
		}
	}
	return nil
}

// FirstDep returns the first token in [start, end) with the given dependency
// label, or nil.
func (d *Document) FirstDep(dep string, start, end int) *Token {
	for i := range d.Tokens {
		t := &d.Tokens[i]
		if t.Index < start || t.Index >= end {
			continue
		}
		if t.Dep == dep {
			return t
		}
	}
	return nil
}

// AlphaCount counts alphabetic tokens in [start, end)
func (d *Document) AlphaCount(start, end int) int {
	n := 0
	for _, t := range d.Tokens {
		if t.Index >= start && t.Index < end && t.IsAlpha {
			n++
		}
	}
	return n
}

// EntitiesIn returns entity spans fully contained in [start, end)
func (d *Document) EntitiesIn(start, end int) []Span {
	var out []Span
	for _, e := range d.Entities {
		if e.Start >= start && e.End <= end {
			out = append(out, e)
		}
	}
	return out
}

// SentenceSpans returns sentence boundaries; a document with no explicit
// boundaries is treated as a single sentence.
func (d *Document) SentenceSpans() []Sentence {
	if len(d.Sentences) > 0 {
		return d.Sentences
	}
	return []Sentence{{Start: 0, End: len(d.Tokens), Text: strings.TrimSpace(d.Text)}}
}
