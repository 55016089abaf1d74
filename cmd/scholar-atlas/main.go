// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scholar-atlas CLI: a local catalog
// of academics with a relevance engine, relationship graphs, and a
// contribution workflow against a remote forge.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-atlas/internal/secrets"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "scholar-atlas/0.1"
)

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the scholar-atlas CLI.
var rootCmd = &cobra.Command{
	Use:   "scholar-atlas",
	Short: "Catalog of academics with relevance search and relation graphs",
	Long: `scholar-atlas maintains a local catalog of academics, their works, and
their relationships. The catalog lives in SQLite and is fed from YAML
records; the relevance engine scores the catalog against free-text queries,
infers relationships among the top hits, and projects them as graphs.

Each concern is a subcommand: catalog (store management), search, graph,
serve (HTTP API), and contribute (propose a record upstream).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scholar-atlas.yaml or ~/.config/scholar-atlas/config.yaml)")
	rootCmd.PersistentFlags().String("catalog-dir", "catalog", "base directory for the catalog (contains records/, index/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scholar-atlas")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scholar-atlas"))
		}
	}

	viper.SetEnvPrefix("SCHOLAR_ATLAS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// catalogConfig resolves the catalog directory from flag, config file, or
// default, in that order.
func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	if !cmd.Flags().Changed("catalog-dir") {
		if v := viper.GetString("catalog.catalog_dir"); v != "" {
			dir = v
		}
	}
	return types.CatalogConfig{CatalogDir: dir}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
