// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import "github.com/pdiddy/scholar-atlas/pkg/types"

// ToGraph projects a search report into nodes and edges for rendering. Each
// match becomes a node; relation endpoints that did not rank become context
// nodes so every edge has both vertices. Deterministic, no ranking changes.
func ToGraph(report types.SearchReport) types.Graph {
	var g types.Graph
	seen := make(map[string]bool)

	for _, m := range report.Matches {
		id := types.Slug(m.Scholar.Name)
		if seen[id] {
			continue
		}
		seen[id] = true
		g.Nodes = append(g.Nodes, types.Node{
			ID:    id,
			Label: m.Scholar.Name,
			Kind:  types.NodeMatch,
			Score: m.Score,
		})
	}

	for _, rel := range report.Relations {
		for _, id := range []string{rel.Source, rel.Target} {
			if seen[id] {
				continue
			}
			seen[id] = true
			g.Nodes = append(g.Nodes, types.Node{
				ID:    id,
				Label: id,
				Kind:  types.NodeContext,
			})
		}
		g.Edges = append(g.Edges, types.Edge{
			Source:   rel.Source,
			Target:   rel.Target,
			Strength: rel.Strength,
			Direct:   rel.Direct,
		})
	}

	return g
}
