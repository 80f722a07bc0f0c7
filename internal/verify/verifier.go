package verify

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/veritas/internal/model"
)

// Resolver maps labels to knowledge-base identifiers
type Resolver interface {
	SearchEntities(ctx context.Context, label string) ([]string, error)
	SearchProperties(ctx context.Context, label string) ([]string, error)
}

// Asker runs boolean entailment queries against the knowledge graph
type Asker interface {
	Ask(ctx context.Context, subjectID, propertyID, objectID string) (bool, error)
}

// Verifier checks candidate facts against the knowledge graph. Every failure
// path yields false: an unverifiable claim is never reported correct.
type Verifier struct {
	resolver Resolver
	asker    Asker
	verbose  bool
}

// NewVerifier creates a fact verifier
func NewVerifier(resolver Resolver, asker Asker, verbose bool) *Verifier {
	return &Verifier{resolver: resolver, asker: asker, verbose: verbose}
}

// Check resolves the triplet's labels and asks the graph whether the fact
// holds. It never returns an error; resolution and query failures are false.
func (v *Verifier) Check(ctx context.Context, fact model.Triplet) bool {
	if !fact.Complete() {
		return false
	}

	subjectID := v.resolveEntity(ctx, fact.Head)
	objectID := v.resolveEntity(ctx, fact.Tail)
	propertyID := v.resolveProperty(ctx, fact.Type)

	if subjectID == "" || objectID == "" || propertyID == "" {
		if v.verbose {
			fmt.Fprintf(os.Stderr, "Could not resolve %q -%q-> %q to knowledge-base identifiers\n", fact.Head, fact.Type, fact.Tail)
		}
		return false
	}

	entailed, err := v.asker.Ask(ctx, subjectID, propertyID, objectID)
	if err != nil {
		if v.verbose {
			fmt.Fprintf(os.Stderr, "Warning: entailment query failed: %v\n", err)
		}
		return false
	}

	return entailed
}

// resolveEntity returns the first search hit for a label, or empty
func (v *Verifier) resolveEntity(ctx context.Context, label string) string {
	ids, err := v.resolver.SearchEntities(ctx, label)
	if err != nil || len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// resolveProperty returns the first property hit for a relation label, or empty
func (v *Verifier) resolveProperty(ctx context.Context, label string) string {
	ids, err := v.resolver.SearchProperties(ctx, label)
	if err != nil || len(ids) == 0 {
		return ""
	}
	return ids[0]
}
