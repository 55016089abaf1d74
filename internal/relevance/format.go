// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// FormatTable writes a search report as a human-readable table to w.
func FormatTable(report types.SearchReport, w io.Writer) {
	if len(report.Matches) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-28s  %-6s  %-6s  %s\n",
		"Rank", "Name", "Score", "Rel%", "Taxonomies")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for i, m := range report.Matches {
		name := m.Scholar.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-28s  %-6d  %-6.1f  %s\n",
			i+1, name, m.Score, m.Relevance, formatTaxonomies(m.Scholar.Taxonomies))
	}

	if len(report.Relations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Relations:")
		for _, rel := range report.Relations {
			kind := "shared tags"
			if rel.Direct {
				kind = "direct"
			}
			fmt.Fprintf(w, "  %s <-> %s  (%s, strength %d)\n",
				rel.Source, rel.Target, kind, rel.Strength)
		}
	}

	fmt.Fprintf(w, "\n%s\n", report.Summary)
}

// FormatJSON writes the full report as indented JSON to w.
func FormatJSON(report types.SearchReport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// formatTaxonomies renders a compact category summary for the table view,
// e.g. "theme: Power, Gender". Long lists are elided.
func formatTaxonomies(taxonomies map[string][]string) string {
	for _, category := range []string{
		types.TaxonomyTheme, types.TaxonomyDiscipline, types.TaxonomyTradition,
	} {
		values := taxonomies[category]
		if len(values) == 0 {
			continue
		}
		joined := strings.Join(values, ", ")
		if len(joined) > 30 {
			joined = joined[:27] + "..."
		}
		return category + ": " + joined
	}
	return ""
}
