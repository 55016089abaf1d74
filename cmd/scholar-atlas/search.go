// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-atlas/internal/catalog"
	"github.com/pdiddy/scholar-atlas/internal/relevance"
	"github.com/pdiddy/scholar-atlas/internal/remote"
	"github.com/pdiddy/scholar-atlas/internal/secrets"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the catalog for scholars matching a free-text query",
	Long: `Search scores every scholar in the catalog against the query, ranks the
hits, and infers relationships among the top matches. With --remote the
query is sent to a remote relevance service instead; the output shape is
identical either way.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	depthFlag, _ := cmd.Flags().GetString("depth")
	depth, err := types.ParseDepth(depthFlag)
	if err != nil {
		return err
	}

	useRemote, _ := cmd.Flags().GetBool("remote")

	var report types.SearchReport
	if useRemote {
		report, err = remoteSearch(cmd.Context(), cmd, query, depth)
	} else {
		report, err = localSearch(cmd.Context(), cmd, query, depth)
	}
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return relevance.FormatJSON(report, os.Stdout)
	}
	relevance.FormatTable(report, os.Stdout)
	return nil
}

func localSearch(ctx context.Context, cmd *cobra.Command, query string, depth types.Depth) (types.SearchReport, error) {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return types.SearchReport{}, err
	}
	defer store.Close()

	corpus, err := store.GetAll(ctx)
	if err != nil {
		return types.SearchReport{}, err
	}

	return relevance.Search(query, corpus, types.RelevanceConfig{Depth: depth})
}

func remoteSearch(ctx context.Context, cmd *cobra.Command, query string, depth types.Depth) (types.SearchReport, error) {
	baseURL, _ := cmd.Flags().GetString("remote-url")
	if baseURL == "" {
		baseURL = viper.GetString("remote.base_url")
	}
	if baseURL == "" {
		return types.SearchReport{}, fmt.Errorf("remote search requires --remote-url or remote.base_url in the config")
	}

	client := remote.New(types.RemoteConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		BaseURL: baseURL,
		APIKey:  secrets.Get(loadedSecrets, "relevance-api-key"),
	})
	return client.Search(ctx, query, depth)
}

func init() {
	searchCmd.Flags().String("depth", "basic", "search depth hint: basic, medium, or deep")
	searchCmd.Flags().Bool("json", false, "output the full report as JSON")
	searchCmd.Flags().Bool("remote", false, "query a remote relevance service instead of the local engine")
	searchCmd.Flags().String("remote-url", "", "remote relevance service base URL")

	rootCmd.AddCommand(searchCmd)
}
