package relex

import (
	"context"
	"errors"
	"strings"

	"github.com/ppiankov/veritas/internal/model"
)

// ErrNoTriplets is returned when the decoder produced nothing to choose from
var ErrNoTriplets = errors.New("no triplets decoded")

// SubjectFunc is the entity-unaware extraction mode used as the last scoring
// signal: it pulls the subject entity out of the source text itself.
type SubjectFunc func(ctx context.Context, text string) (string, error)

// Select chooses the single triplet best representing the claim in text.
//
// Decision order:
//  1. one triplet, no entities: return it as-is
//  2. one triplet, entities: canonicalize the head if it overlaps a mention
//  3. several triplets, entities: first triplet whose relation text appears
//     verbatim in the source AND whose head overlaps a mention wins; a
//     triplet matching on relation alone is skipped, not returned
//  4. several triplets, no entities: first triplet whose relation text
//     appears verbatim in the source
//  5. no relation match and no entities: first triplet whose head overlaps
//     the subject extracted from the source text
//  6. otherwise the first decoded triplet
//
// Verbatim relation containment is a cheap grounding signal: a relation the
// model copied out of the question is less likely hallucinated.
func Select(ctx context.Context, triplets []model.Triplet, entities []model.LinkedEntity, text string, subjectOf SubjectFunc) (model.Triplet, error) {
	if len(triplets) == 0 {
		return model.Triplet{}, ErrNoTriplets
	}

	switch {
	case len(triplets) == 1 && len(entities) == 0:
		return triplets[0], nil

	case len(triplets) == 1:
		t := triplets[0]
		for _, e := range entities {
			if overlaps(t.Head, e.Mention) {
				return model.Triplet{Head: e.Label, Type: t.Type, Tail: t.Tail}, nil
			}
		}
		return t, nil

	case len(entities) > 0:
		for _, t := range triplets {
			if !strings.Contains(text, t.Type) {
				continue
			}
			for _, e := range entities {
				if overlaps(t.Head, e.Mention) {
					return model.Triplet{Head: e.Label, Type: t.Type, Tail: t.Tail}, nil
				}
			}
			// Relation matched but no entity overlapped: keep scanning
		}

	default:
		for _, t := range triplets {
			if strings.Contains(text, t.Type) {
				return t, nil
			}
		}

		if subjectOf != nil {
			if subject, err := subjectOf(ctx, text); err == nil {
				for _, t := range triplets {
					if overlaps(t.Head, subject) {
						return t, nil
					}
				}
			}
		}
	}

	return triplets[0], nil
}

// overlaps tests substring containment in either direction
func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
