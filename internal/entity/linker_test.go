package entity

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/veritas/internal/model"
)

// mockKB serves canned search results and entity records
type mockKB struct {
	search  map[string][]string
	info    map[string]*model.EntityInfo
	failIDs map[string]bool
	err     error
}

func (m *mockKB) SearchEntities(ctx context.Context, mention string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.search[mention], nil
}

func (m *mockKB) FetchEntity(ctx context.Context, id string) (*model.EntityInfo, error) {
	if m.failIDs[id] {
		return nil, errors.New("fetch failed")
	}
	info, ok := m.info[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return info, nil
}

func TestLinker_MostNotableWins(t *testing.T) {
	kb := &mockKB{
		search: map[string][]string{"Paris": {"Q167646", "Q90"}},
		info: map[string]*model.EntityInfo{
			"Q167646": {ID: "Q167646", Label: "Paris, Texas", Sitelinks: 5, URL: "https://en.wikipedia.org/wiki/Paris,_Texas"},
			"Q90":     {ID: "Q90", Label: "Paris", Sitelinks: 12, URL: "https://en.wikipedia.org/wiki/Paris"},
		},
	}

	linked := NewLinker(kb, false).Link(context.Background(), []string{"Paris"})
	if len(linked) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(linked))
	}
	if linked[0].Label != "Paris" || linked[0].URL != "https://en.wikipedia.org/wiki/Paris" {
		t.Errorf("expected most notable candidate, got %+v", linked[0])
	}
}

func TestLinker_TieKeepsFirstSeen(t *testing.T) {
	kb := &mockKB{
		search: map[string][]string{"Mercury": {"Q308", "Q925"}},
		info: map[string]*model.EntityInfo{
			"Q308": {ID: "Q308", Label: "Mercury (planet)", Sitelinks: 7},
			"Q925": {ID: "Q925", Label: "Mercury (element)", Sitelinks: 7},
		},
	}

	linked := NewLinker(kb, false).Link(context.Background(), []string{"Mercury"})
	if linked[0].Label != "Mercury (planet)" {
		t.Errorf("tie must keep first-seen candidate, got %s", linked[0].Label)
	}
}

func TestLinker_NoCandidates(t *testing.T) {
	kb := &mockKB{search: map[string][]string{}}

	linked := NewLinker(kb, false).Link(context.Background(), []string{"Xyzzyx"})
	if len(linked) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(linked))
	}
	if linked[0].Mention != "Xyzzyx" || linked[0].Linked() {
		t.Errorf("expected unresolved entry, got %+v", linked[0])
	}
}

func TestLinker_SearchFailureDegrades(t *testing.T) {
	kb := &mockKB{err: errors.New("503")}

	linked := NewLinker(kb, false).Link(context.Background(), []string{"Paris", "France"})
	if len(linked) != 2 {
		t.Fatalf("failures must not shrink the result, got %d entries", len(linked))
	}
	for _, e := range linked {
		if e.Linked() {
			t.Errorf("expected unresolved entry, got %+v", e)
		}
	}
}

func TestLinker_FetchFailureSkipsCandidate(t *testing.T) {
	kb := &mockKB{
		search:  map[string][]string{"Paris": {"Q90", "Q167646"}},
		failIDs: map[string]bool{"Q90": true},
		info: map[string]*model.EntityInfo{
			"Q167646": {ID: "Q167646", Label: "Paris, Texas", Sitelinks: 5},
		},
	}

	linked := NewLinker(kb, false).Link(context.Background(), []string{"Paris"})
	if linked[0].Label != "Paris, Texas" {
		t.Errorf("surviving candidate should win, got %+v", linked[0])
	}
}

func TestMostNotable_Empty(t *testing.T) {
	if MostNotable(nil) != nil {
		t.Error("expected nil for no candidates")
	}
}
