// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-atlas catalog:
// scholar records, search reports, graph projections, and per-stage
// configuration.
package types

import "strings"

// Taxonomy category names used by convention across the catalog. The
// Taxonomies map is an open set; these constants cover the categories the
// curated records ship with, but any category name is accepted without a
// schema change.
const (
	TaxonomyDiscipline  = "discipline"
	TaxonomyTradition   = "tradition"
	TaxonomyEra         = "era"
	TaxonomyMethodology = "methodology"
	TaxonomyTheme       = "theme"
)

// Work is a published work attributed to a scholar.
type Work struct {
	// Title is the work's title.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year.
	Year int `json:"year" yaml:"year"`

	// With lists co-contributor names, if any.
	With []string `json:"with,omitempty" yaml:"with,omitempty"`
}

// Appearance is a recorded occurrence of a scholar outside their own works:
// a lecture, debate, interview, or conference appearance.
type Appearance struct {
	// Title is the occurrence title (e.g. "Debate on Human Nature").
	Title string `json:"title" yaml:"title"`

	// Year is the year of the occurrence.
	Year int `json:"year" yaml:"year"`

	// Venue is where the occurrence took place.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`
}

// Scholar is an academic profile record. The display name doubles as the
// record identifier after Slug normalization; the catalog store enforces
// uniqueness, the relevance engine treats records as read-only input.
type Scholar struct {
	// Name is the display name and, slugified, the record key.
	Name string `json:"name" yaml:"name"`

	// Summary is a free-text description of the scholar's work.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Taxonomies maps a category name (discipline, tradition, era,
	// methodology, theme, ...) to its ordered tag values.
	Taxonomies map[string][]string `json:"taxonomies,omitempty" yaml:"taxonomies,omitempty"`

	// Works lists the scholar's published works in record order.
	Works []Work `json:"works,omitempty" yaml:"works,omitempty"`

	// Appearances lists recorded occurrences in record order.
	Appearances []Appearance `json:"appearances,omitempty" yaml:"appearances,omitempty"`

	// Connections lists the slugs of related scholars. The list is
	// one-directional: A naming B does not imply B names A, and no layer
	// reconciles the two.
	Connections []string `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// Slug returns the record key for a display name: lowercased, non-word runes
// dropped, word runs joined by hyphens (e.g. "Michel Foucault" →
// "michel-foucault").
func Slug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '-', r == '_':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}
