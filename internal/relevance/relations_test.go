// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"reflect"
	"testing"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

func matchesFor(scholars ...types.Scholar) []types.Match {
	matches := make([]types.Match, len(scholars))
	for i, s := range scholars {
		matches[i] = types.Match{Scholar: s, Score: 1}
	}
	return matches
}

func TestRelateDirectEitherDirection(t *testing.T) {
	a := types.Scholar{Name: "Michel Foucault", Connections: []string{"judith-butler"}}
	b := types.Scholar{Name: "Judith Butler"}

	// A lists B, B does not list A. One direction suffices, and the
	// asymmetry is left alone.
	rel, ok := relate(a, b)
	if !ok || !rel.Direct {
		t.Fatalf("relate(a, b) = %+v, %v; want direct relation", rel, ok)
	}
	rel, ok = relate(b, a)
	if !ok || !rel.Direct {
		t.Fatalf("relate(b, a) = %+v, %v; want direct relation", rel, ok)
	}
	if rel.Strength != 5 {
		t.Errorf("strength = %d, want 5 (direct, no shared tags)", rel.Strength)
	}
}

func TestRelateSharedTagsOnly(t *testing.T) {
	a := types.Scholar{Name: "A", Taxonomies: map[string][]string{
		"theme": {"Power", "Ethics"},
		"era":   {"20th Century"},
	}}
	b := types.Scholar{Name: "B", Taxonomies: map[string][]string{
		"theme": {"Ethics", "Language"},
		"era":   {"20th Century"},
	}}

	rel, ok := relate(a, b)
	if !ok {
		t.Fatal("want relation from shared tags")
	}
	if rel.Direct {
		t.Error("relation should not be direct")
	}
	// Categories come back in sorted order; values keep a's order.
	want := []types.SharedTag{
		{Category: "era", Values: []string{"20th Century"}},
		{Category: "theme", Values: []string{"Ethics"}},
	}
	if !reflect.DeepEqual(rel.Evidence, want) {
		t.Errorf("evidence = %+v, want %+v", rel.Evidence, want)
	}
	if rel.Strength != 4 {
		t.Errorf("strength = %d, want 4 (2 categories x 2)", rel.Strength)
	}
}

func TestRelateNoOverlap(t *testing.T) {
	a := types.Scholar{Name: "A", Taxonomies: map[string][]string{"theme": {"Power"}}}
	b := types.Scholar{Name: "B", Taxonomies: map[string][]string{"theme": {"Language"}}}

	if _, ok := relate(a, b); ok {
		t.Error("pair with no connection and no shared tags must not relate")
	}
}

func TestInferRelationsWindowAndCap(t *testing.T) {
	// Seven scholars, all sharing one theme: only the top five enter
	// inference, giving C(5,2) = 10 relations at most.
	var scholars []types.Scholar
	names := []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven"}
	for _, name := range names {
		scholars = append(scholars, types.Scholar{
			Name:       name,
			Taxonomies: map[string][]string{"theme": {"Power"}},
		})
	}

	relations := inferRelations(matchesFor(scholars...))
	if len(relations) != 10 {
		t.Fatalf("relations = %d, want 10", len(relations))
	}

	allowed := map[string]bool{"one": true, "two": true, "three": true,
		"four": true, "five": true}
	for _, rel := range relations {
		if !allowed[rel.Source] || !allowed[rel.Target] {
			t.Errorf("relation %s-%s involves a scholar outside the top five",
				rel.Source, rel.Target)
		}
	}
}

func TestInferRelationsStrengthOrder(t *testing.T) {
	a := types.Scholar{Name: "A",
		Taxonomies:  map[string][]string{"theme": {"Power"}},
		Connections: []string{"b"}}
	b := types.Scholar{Name: "B",
		Taxonomies: map[string][]string{"theme": {"Power"}}}
	c := types.Scholar{Name: "C",
		Taxonomies: map[string][]string{"theme": {"Power"}}}

	relations := inferRelations(matchesFor(a, b, c))
	if len(relations) != 3 {
		t.Fatalf("relations = %d, want 3", len(relations))
	}
	// A-B is direct (5) + shared theme (2) = 7; the rest are 2.
	if relations[0].Source != "a" || relations[0].Target != "b" {
		t.Errorf("strongest relation = %s-%s, want a-b",
			relations[0].Source, relations[0].Target)
	}
	if relations[0].Strength != 7 {
		t.Errorf("strength = %d, want 7", relations[0].Strength)
	}
	for i := 1; i < len(relations); i++ {
		if relations[i].Strength > relations[i-1].Strength {
			t.Fatal("relations not sorted by strength")
		}
	}
}

func TestInferRelationsNoEvidenceFreePairs(t *testing.T) {
	scholars := []types.Scholar{
		{Name: "A", Taxonomies: map[string][]string{"theme": {"Power"}}},
		{Name: "B", Taxonomies: map[string][]string{"theme": {"Power"}}},
		{Name: "C", Taxonomies: map[string][]string{"era": {"Antiquity"}}},
	}
	for _, rel := range inferRelations(matchesFor(scholars...)) {
		if !rel.Direct && len(rel.Evidence) == 0 {
			t.Errorf("relation %s-%s has no direct link and no evidence",
				rel.Source, rel.Target)
		}
	}
}
