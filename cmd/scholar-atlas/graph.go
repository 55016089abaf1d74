// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-atlas/internal/relevance"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

var graphCmd = &cobra.Command{
	Use:   "graph [query...]",
	Short: "Project search results as a relationship graph",
	Long: `Graph runs a relevance search and prints the node/edge projection as
JSON, suitable for a force-directed renderer. Matches become nodes; relation
endpoints that did not rank on their own are included as context nodes.`,
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	depthFlag, _ := cmd.Flags().GetString("depth")
	depth, err := types.ParseDepth(depthFlag)
	if err != nil {
		return err
	}

	report, err := localSearch(cmd.Context(), cmd, query, depth)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(relevance.ToGraph(report))
}

func init() {
	graphCmd.Flags().String("depth", "basic", "search depth hint: basic, medium, or deep")

	rootCmd.AddCommand(graphCmd)
}
