package entity

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/veritas/internal/model"
)

// KB is the slice of the knowledge-base client the linker needs
type KB interface {
	SearchEntities(ctx context.Context, mention string) ([]string, error)
	FetchEntity(ctx context.Context, id string) (*model.EntityInfo, error)
}

// Linker disambiguates mentions against knowledge-base search candidates
type Linker struct {
	kb      KB
	verbose bool
}

// NewLinker creates a linker over the knowledge-base client
func NewLinker(kb KB, verbose bool) *Linker {
	return &Linker{kb: kb, verbose: verbose}
}

// Link resolves each mention to its most notable candidate. A mention with
// no candidates yields an entry with empty label and URL; lookup failures
// are treated the same way and never abort the batch.
func (l *Linker) Link(ctx context.Context, mentions []string) []model.LinkedEntity {
	linked := make([]model.LinkedEntity, 0, len(mentions))

	for _, mention := range mentions {
		ids, err := l.kb.SearchEntities(ctx, mention)
		if err != nil {
			if l.verbose {
				fmt.Fprintf(os.Stderr, "Warning: candidate search for %q failed: %v\n", mention, err)
			}
			linked = append(linked, model.LinkedEntity{Mention: mention})
			continue
		}
		if len(ids) == 0 {
			linked = append(linked, model.LinkedEntity{Mention: mention})
			continue
		}

		candidates := make([]*model.EntityInfo, 0, len(ids))
		for _, id := range ids {
			info, err := l.kb.FetchEntity(ctx, id)
			if err != nil {
				if l.verbose {
					fmt.Fprintf(os.Stderr, "Warning: fetch of candidate %s failed: %v\n", id, err)
				}
				continue
			}
			candidates = append(candidates, info)
		}

		best := MostNotable(candidates)
		if best == nil {
			linked = append(linked, model.LinkedEntity{Mention: mention})
			continue
		}

		linked = append(linked, model.LinkedEntity{
			Mention: mention,
			Label:   best.Label,
			URL:     best.URL,
		})
	}

	return linked
}

// MostNotable picks the candidate with the maximum sitelink count, ties
// broken by first-seen order. Sitelink count is a cheap proxy for notability:
// the mention most readers mean is usually the one most encyclopedias cover.
func MostNotable(candidates []*model.EntityInfo) *model.EntityInfo {
	var best *model.EntityInfo
	maxSitelinks := -1
	for _, c := range candidates {
		if c.Sitelinks > maxSitelinks {
			best = c
			maxSitelinks = c.Sitelinks
		}
	}
	return best
}
