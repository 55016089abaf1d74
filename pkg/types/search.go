// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Depth is the search depth hint carried through the relevance pipeline. The
// engine passes it through unchanged; callers use it as a cache-key component
// and remote-request field.
type Depth string

const (
	DepthBasic  Depth = "basic"
	DepthMedium Depth = "medium"
	DepthDeep   Depth = "deep"
)

// ParseDepth validates a depth string. An empty string defaults to basic.
func ParseDepth(s string) (Depth, error) {
	switch Depth(s) {
	case "":
		return DepthBasic, nil
	case DepthBasic, DepthMedium, DepthDeep:
		return Depth(s), nil
	default:
		return "", fmt.Errorf("unknown depth %q: use basic, medium, or deep", s)
	}
}

// Match is a scored search hit.
type Match struct {
	// Scholar is the matched record.
	Scholar Scholar `json:"scholar" yaml:"scholar"`

	// Score is the raw relevance score: non-negative, unbounded.
	Score int `json:"score" yaml:"score"`

	// Relevance is the score as a percentage of the top score in the
	// result set, rounded to one decimal place.
	Relevance float64 `json:"relevance" yaml:"relevance"`
}

// SharedTag records overlapping taxonomy values between two scholars in one
// category.
type SharedTag struct {
	// Category is the taxonomy category the overlap was found in.
	Category string `json:"category" yaml:"category"`

	// Values are the overlapping tag values, in the source scholar's order.
	Values []string `json:"values" yaml:"values"`
}

// Relation is an inferred pairwise relationship between two matched
// scholars. Source and target are assigned arbitrarily; the pair is
// unordered for display.
type Relation struct {
	// Source is the slug of one endpoint.
	Source string `json:"source" yaml:"source"`

	// Target is the slug of the other endpoint.
	Target string `json:"target" yaml:"target"`

	// Direct reports whether either scholar explicitly lists the other in
	// its Connections.
	Direct bool `json:"direct" yaml:"direct"`

	// Evidence lists the shared taxonomy values supporting the relation.
	Evidence []SharedTag `json:"evidence,omitempty" yaml:"evidence,omitempty"`

	// Strength is 5 for a direct connection plus 2 per category with
	// shared evidence.
	Strength int `json:"strength" yaml:"strength"`
}

// SearchReport is the full output of a relevance query.
type SearchReport struct {
	// Query is the raw query string as submitted.
	Query string `json:"query" yaml:"query"`

	// Depth is the depth hint the query ran with.
	Depth Depth `json:"depth" yaml:"depth"`

	// Matches are the ranked hits, highest score first, at most ten.
	Matches []Match `json:"matches" yaml:"matches"`

	// Relations are inferred among the top five matches, strongest first.
	Relations []Relation `json:"relations" yaml:"relations"`

	// Summary is a one-line natural-language report.
	Summary string `json:"summary" yaml:"summary"`
}

// NodeKind classifies a graph node.
type NodeKind string

const (
	// NodeMatch marks a node backed by a ranked match.
	NodeMatch NodeKind = "match"

	// NodeContext marks a relation endpoint that did not rank on its own.
	NodeContext NodeKind = "context"
)

// Node is a vertex in a projected relationship graph.
type Node struct {
	// ID is the scholar slug.
	ID string `json:"id" yaml:"id"`

	// Label is the display name.
	Label string `json:"label" yaml:"label"`

	// Kind is match or context.
	Kind NodeKind `json:"kind" yaml:"kind"`

	// Score is the match score; zero for context nodes.
	Score int `json:"score" yaml:"score"`
}

// Edge is a relation projected into the graph.
type Edge struct {
	// Source and Target are node IDs.
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`

	// Strength mirrors the relation strength.
	Strength int `json:"strength" yaml:"strength"`

	// Direct mirrors the relation's direct flag.
	Direct bool `json:"direct" yaml:"direct"`
}

// Graph is the node/edge projection of a search report, suitable for a
// force-directed renderer.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}
