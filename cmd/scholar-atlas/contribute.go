// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-atlas/internal/contrib"
	"github.com/pdiddy/scholar-atlas/internal/secrets"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

var contributeCmd = &cobra.Command{
	Use:   "contribute <record.yaml>",
	Short: "Propose a scholar record upstream as a pull request",
	Long: `Contribute submits a scholar record to the shared catalog repository:
it creates a branch on the forge, commits the record under catalog/records/,
and opens a pull request against the base branch. Requires a forge-token
secret (or SCHOLAR_ATLAS_FORGE_TOKEN).`,
	Args: cobra.ExactArgs(1),
	RunE: runContribute,
}

func runContribute(cmd *cobra.Command, args []string) error {
	scholar, err := readRecordFile(args[0])
	if err != nil {
		return err
	}

	baseURL, _ := cmd.Flags().GetString("forge-url")
	if baseURL == "" {
		baseURL = viper.GetString("contrib.base_url")
	}
	repo, _ := cmd.Flags().GetString("repo")
	if repo == "" {
		repo = viper.GetString("contrib.repo")
	}
	if baseURL == "" || repo == "" {
		return fmt.Errorf("contribution requires --forge-url and --repo (or contrib.base_url and contrib.repo in the config)")
	}
	base, _ := cmd.Flags().GetString("base")

	token := secrets.Get(loadedSecrets, "forge-token")
	if token == "" {
		return fmt.Errorf("no forge token: add .secrets/forge-token or set SCHOLAR_ATLAS_FORGE_TOKEN")
	}

	client := contrib.New(types.ContribConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultTimeout,
			UserAgent: defaultUserAgent,
		},
		BaseURL:    baseURL,
		Repo:       repo,
		BaseBranch: base,
		Token:      token,
	})

	pr, err := client.Propose(cmd.Context(), scholar)
	if err != nil {
		return err
	}

	fmt.Printf("Opened pull request #%d: %s\n", pr.Number, pr.URL)
	return nil
}

func init() {
	contributeCmd.Flags().String("forge-url", "", "forge API base URL")
	contributeCmd.Flags().String("repo", "", "catalog repository (owner/name)")
	contributeCmd.Flags().String("base", "main", "base branch for the pull request")

	rootCmd.AddCommand(contributeCmd)
}
