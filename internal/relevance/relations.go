// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"slices"
	"sort"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// inferRelations compares the top matches pairwise (upper-triangular, so
// each pair once) and emits a relation for every pair that is directly
// connected or shares taxonomy values. Relations come back strongest first;
// ties keep pair-generation order.
func inferRelations(matches []types.Match) []types.Relation {
	window := matches
	if len(window) > relationWindow {
		window = window[:relationWindow]
	}

	var relations []types.Relation
	for i := 0; i < len(window); i++ {
		for j := i + 1; j < len(window); j++ {
			if rel, ok := relate(window[i].Scholar, window[j].Scholar); ok {
				relations = append(relations, rel)
			}
		}
	}

	sort.SliceStable(relations, func(i, j int) bool {
		return relations[i].Strength > relations[j].Strength
	})
	return relations
}

// relate builds the relation between two scholars, reporting ok=false when
// there is neither a direct connection nor shared evidence.
func relate(a, b types.Scholar) (types.Relation, bool) {
	aSlug := types.Slug(a.Name)
	bSlug := types.Slug(b.Name)

	// One hop, either direction. The connection lists are not required to
	// be mutual and are never reconciled here.
	direct := slices.Contains(a.Connections, bSlug) ||
		slices.Contains(b.Connections, aSlug)

	evidence := sharedEvidence(a, b)
	if !direct && len(evidence) == 0 {
		return types.Relation{}, false
	}

	strength := 2 * len(evidence)
	if direct {
		strength += 5
	}

	return types.Relation{
		Source:   aSlug,
		Target:   bSlug,
		Direct:   direct,
		Evidence: evidence,
		Strength: strength,
	}, true
}

// sharedEvidence intersects the two taxonomy maps per category. Categories
// are visited in sorted order so identical inputs always produce identical
// evidence lists; values keep a's order.
func sharedEvidence(a, b types.Scholar) []types.SharedTag {
	categories := make([]string, 0, len(a.Taxonomies))
	for category := range a.Taxonomies {
		if _, ok := b.Taxonomies[category]; ok {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)

	var evidence []types.SharedTag
	for _, category := range categories {
		var shared []string
		for _, v := range a.Taxonomies[category] {
			if slices.Contains(b.Taxonomies[category], v) {
				shared = append(shared, v)
			}
		}
		if len(shared) > 0 {
			evidence = append(evidence, types.SharedTag{Category: category, Values: shared})
		}
	}
	return evidence
}
