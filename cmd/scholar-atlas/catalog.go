// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-atlas/internal/catalog"
	"github.com/pdiddy/scholar-atlas/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the scholar catalog (ingest, list, show, add, export)",
	Long: `Catalog manages the local SQLite catalog built from YAML scholar
records. Use subcommands to ingest record files, inspect entries, add a
single record, or export the full catalog.`,
}

// --- ingest subcommand ---

var catalogIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest scholar YAML records into the catalog",
	Long: `Ingest reads scholar records from catalog/records/ (one YAML file per
scholar) and upserts them into the catalog database. Unchanged files are
skipped on subsequent runs; one-way connection links are reported.`,
	RunE: runCatalogIngest,
}

func runCatalogIngest(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed ingest", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all scholars in the catalog",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	scholars, err := store.GetAll(context.Background())
	if err != nil {
		return err
	}

	if len(scholars) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %-28s  %-5s  %s\n",
		"Slug", "Name", "Works", "Connections")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, s := range scholars {
		fmt.Fprintf(os.Stdout, "%-24s  %-28s  %-5d  %d\n",
			types.Slug(s.Name), s.Name, len(s.Works), len(s.Connections))
	}
	fmt.Fprintf(os.Stdout, "\n%d scholars\n", len(scholars))
	return nil
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Print one scholar record as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	scholar, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(scholar)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

// --- add subcommand ---

var catalogAddCmd = &cobra.Command{
	Use:   "add <record.yaml>",
	Short: "Upsert a single scholar record from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogAdd,
}

func runCatalogAdd(cmd *cobra.Command, args []string) error {
	scholar, err := readRecordFile(args[0])
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Upsert(context.Background(), scholar); err != nil {
		return err
	}
	fmt.Printf("Upserted %s\n", types.Slug(scholar.Name))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(catalogConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	dir := catalogConfig(cmd).CatalogDir
	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.yaml\n", dir)
	case "json":
		if err := store.ExportJSON(context.Background()); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.json\n", dir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	return nil
}

// readRecordFile parses one scholar record from a YAML file.
func readRecordFile(path string) (types.Scholar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Scholar{}, fmt.Errorf("reading record file: %w", err)
	}
	var scholar types.Scholar
	if err := yaml.Unmarshal(data, &scholar); err != nil {
		return types.Scholar{}, fmt.Errorf("parsing record file: %w", err)
	}
	if scholar.Name == "" {
		return types.Scholar{}, fmt.Errorf("record %s has no name", path)
	}
	return scholar, nil
}

func init() {
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogIngestCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogAddCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
