// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-atlas/internal/api"
	"github.com/pdiddy/scholar-atlas/internal/catalog"
	"github.com/pdiddy/scholar-atlas/internal/relevance"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and relevance engine over HTTP",
	Long: `Serve exposes the catalog and the relevance engine as a JSON API.
POST /search takes {query, depth} and returns the same report the search
command produces, so the server doubles as a remote relevance service.
Reports are cached per (query, depth); the oldest entry is retired once the
cache fills.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if !cmd.Flags().Changed("addr") {
		if v := viper.GetString("server.addr"); v != "" {
			addr = v
		}
	}
	cacheSize, _ := cmd.Flags().GetInt("cache-size")

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	srv := api.New(store, types.RelevanceConfig{CacheSize: cacheSize}, addr)
	return srv.Run()
}

func init() {
	serveCmd.Flags().String("addr", ":8470", "listen address")
	serveCmd.Flags().Int("cache-size", relevance.DefaultCacheSize, "bounded report cache size")

	rootCmd.AddCommand(serveCmd)
}
