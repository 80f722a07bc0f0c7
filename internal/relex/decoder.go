package relex

import (
	"strings"

	"github.com/ppiankov/veritas/internal/model"
)

// Control tokens of the generation model's output grammar. The grammar is
// dictated by the external model and must be parsed exactly as emitted.
const (
	tokTriplet = "<triplet>"
	tokSubject = "<subj>"
	tokObject  = "<obj>"
)

// Boundary and padding markers stripped before parsing
var boundaryMarkers = []string{"<s>", "<pad>", "</s>"}

// decodeState tracks which accumulator plain tokens feed
type decodeState int

const (
	stateNone decodeState = iota
	stateHead
	stateTail
	stateRelation
)

// decoder is the explicit state-machine value folded over the token stream
type decoder struct {
	state    decodeState
	head     strings.Builder
	tail     strings.Builder
	relation strings.Builder
	out      []model.Triplet
}

// Decode parses the flat token stream emitted by the relation-extraction
// model into triplets. Streams ending mid-triplet with an empty field drop
// that triplet rather than emitting empty strings.
func Decode(stream string) []model.Triplet {
	text := stream
	for _, marker := range boundaryMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}

	d := &decoder{}
	for _, token := range strings.Fields(strings.TrimSpace(text)) {
		d.step(token)
	}
	d.finish()

	return d.out
}

func (d *decoder) step(token string) {
	switch token {
	case tokTriplet:
		if d.pending().Complete() {
			d.flush()
		}
		d.head.Reset()
		d.state = stateHead

	case tokSubject:
		if d.relation.Len() > 0 {
			d.flush()
		}
		d.tail.Reset()
		d.state = stateTail

	case tokObject:
		d.relation.Reset()
		d.state = stateRelation

	default:
		switch d.state {
		case stateHead:
			appendWord(&d.head, token)
		case stateTail:
			appendWord(&d.tail, token)
		case stateRelation:
			appendWord(&d.relation, token)
		}
	}
}

func (d *decoder) finish() {
	if d.pending().Complete() {
		d.flush()
	}
}

func (d *decoder) pending() model.Triplet {
	return model.Triplet{
		Head: strings.TrimSpace(d.head.String()),
		Type: strings.TrimSpace(d.relation.String()),
		Tail: strings.TrimSpace(d.tail.String()),
	}
}

func (d *decoder) flush() {
	d.out = append(d.out, d.pending())
	d.relation.Reset()
}

func appendWord(b *strings.Builder, word string) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(word)
}

// Encode renders triplets back into the control-token grammar. Used to build
// well-formed streams in tests; Decode(Encode(ts)) == ts for complete
// triplets.
func Encode(triplets []model.Triplet) string {
	var b strings.Builder
	for _, t := range triplets {
		b.WriteString(tokTriplet)
		b.WriteString(" " + t.Head + " ")
		b.WriteString(tokSubject)
		b.WriteString(" " + t.Tail + " ")
		b.WriteString(tokObject)
		b.WriteString(" " + t.Type + " ")
	}
	return strings.TrimSpace(b.String())
}
