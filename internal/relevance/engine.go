// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores a catalog of scholars against a free-text query,
// ranks the hits, and infers relationships among the top-ranked subset. It
// performs no I/O and holds no shared state: every call is a pure function of
// its inputs, so concurrent callers need no locking.
package relevance

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// ErrInvalidQuery is returned for queries that are empty after trimming.
var ErrInvalidQuery = errors.New("query is empty")

const (
	// maxMatches caps the ranked result set.
	maxMatches = 10

	// relationWindow is how many top matches enter pairwise relation
	// inference.
	relationWindow = 5
)

// Field weights for the scoring pass.
const (
	nameBonus        = 5
	summaryWeight    = 2
	taxonomyWeight   = 3
	workWeight       = 1
	appearanceWeight = 1
)

// Search scores every scholar in the corpus against the query, ranks the
// hits, and infers relations among the top matches. The depth hint in cfg is
// recorded in the report but does not alter scoring. A blank query fails with
// ErrInvalidQuery before the corpus is touched; any other input degrades to
// an empty report rather than an error.
func Search(query string, corpus []types.Scholar, cfg types.RelevanceConfig) (types.SearchReport, error) {
	if strings.TrimSpace(query) == "" {
		return types.SearchReport{}, ErrInvalidQuery
	}

	depth := cfg.Depth
	if depth == "" {
		depth = types.DepthBasic
	}

	report := types.SearchReport{
		Query: query,
		Depth: depth,
	}

	tokens := tokenize(query)

	var matches []types.Match
	for _, s := range corpus {
		// A record without an identifier is malformed; skip it rather
		// than fail the batch.
		if s.Name == "" {
			continue
		}
		if score := scoreScholar(s, tokens); score > 0 {
			matches = append(matches, types.Match{Scholar: s, Score: score})
		}
	}

	// Stable sort: ties keep corpus encounter order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}

	if len(matches) > 0 {
		top := matches[0].Score
		for i := range matches {
			matches[i].Relevance = percentOf(matches[i].Score, top)
		}
	}

	report.Matches = matches
	report.Relations = inferRelations(matches)
	report.Summary = summarize(report)
	return report, nil
}

// tokenize lowercases the query, splits on whitespace, discards tokens of
// length three or less, and strips non-word runes from the survivors. A token
// that strips to nothing is dropped: the empty string is a substring of
// everything and would score the whole corpus.
func tokenize(query string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(query)) {
		if len(field) <= 3 {
			continue
		}
		token := stripNonWord(field)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func stripNonWord(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// scoreScholar sums the token hits against one record. The name bonus is
// flat: it is granted once if any token hits, not per token. Summary,
// taxonomy, work, and appearance hits stack per token and per value.
func scoreScholar(s types.Scholar, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}

	score := 0
	name := strings.ToLower(s.Name)
	summary := strings.ToLower(s.Summary)

	for _, token := range tokens {
		if strings.Contains(name, token) {
			score += nameBonus
			break
		}
	}

	for _, token := range tokens {
		if summary != "" && strings.Contains(summary, token) {
			score += summaryWeight
		}
		for _, values := range s.Taxonomies {
			for _, v := range values {
				if strings.Contains(strings.ToLower(v), token) {
					score += taxonomyWeight
				}
			}
		}
		for _, w := range s.Works {
			if strings.Contains(strings.ToLower(w.Title), token) {
				score += workWeight
			}
		}
		for _, a := range s.Appearances {
			if strings.Contains(strings.ToLower(a.Title), token) {
				score += appearanceWeight
			}
		}
	}
	return score
}

// percentOf returns 100*score/top rounded to one decimal place.
func percentOf(score, top int) float64 {
	return math.Round(1000*float64(score)/float64(top)) / 10
}

// summarize builds the one-line report summary.
func summarize(r types.SearchReport) string {
	if len(r.Matches) == 0 {
		return "no matches"
	}
	return fmt.Sprintf("%d matches and %d inferred relations; strongest match: %s",
		len(r.Matches), len(r.Relations), r.Matches[0].Scholar.Name)
}
