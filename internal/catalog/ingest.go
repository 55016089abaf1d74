// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// IngestSummary holds counts from a catalog ingest run.
type IngestSummary struct {
	Ingested int
	Updated  int
	Skipped  int
	Failed   int
}

// Total returns the number of record files processed.
func (s IngestSummary) Total() int {
	return s.Ingested + s.Updated + s.Skipped + s.Failed
}

// Ingest reads scholar YAML files from catalogDir/records/ (one record per
// file) and upserts them. Files unchanged since the last run are skipped by
// mod time. A malformed file fails that record only, never the batch. After
// the pass it reports one-way connection links on w. The lists are stored
// as-is; the warning only makes the gap visible.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	recDir := filepath.Join(s.catalogDir, recordsDir)

	entries, err := os.ReadDir(recDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading records directory %s: %w", recDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		filePath := filepath.Join(recDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		var scholar types.Scholar
		if err := yaml.Unmarshal(data, &scholar); err != nil {
			fmt.Fprintf(w, "failed   %s: parse error: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}
		if scholar.Name == "" {
			fmt.Fprintf(w, "failed   %s: record has no name\n", entry.Name())
			summary.Failed++
			continue
		}

		slug := types.Slug(scholar.Name)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE slug = ?`, slug,
		).Scan(&storedModTime)
		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped  %s\n", slug)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		if err := s.ingestRecord(ctx, scholar, slug, modTime); err != nil {
			fmt.Fprintf(w, "failed   %s: %v\n", entry.Name(), err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated  %s\n", slug)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "ingested %s\n", slug)
			summary.Ingested++
		}
	}

	fmt.Fprintf(w, "\ningested: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Ingested, summary.Updated, summary.Skipped, summary.Failed)

	if err := s.warnOneWayLinks(ctx, w); err != nil {
		fmt.Fprintf(w, "warning: connection check failed: %v\n", err)
	}

	return summary, nil
}

func (s *Store) ingestRecord(ctx context.Context, scholar types.Scholar, slug, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.upsertTx(ctx, tx, scholar); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (slug, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(slug) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		slug, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}

	return tx.Commit()
}

// warnOneWayLinks reports connections whose target is missing or does not
// list the source back.
func (s *Store) warnOneWayLinks(ctx context.Context, w io.Writer) error {
	scholars, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	bySlug := make(map[string]types.Scholar, len(scholars))
	for _, scholar := range scholars {
		bySlug[types.Slug(scholar.Name)] = scholar
	}

	for _, scholar := range scholars {
		slug := types.Slug(scholar.Name)
		for _, target := range scholar.Connections {
			other, ok := bySlug[target]
			if !ok {
				fmt.Fprintf(w, "warning: %s links to unknown scholar %s\n", slug, target)
				continue
			}
			if !slices.Contains(other.Connections, slug) {
				fmt.Fprintf(w, "warning: one-way link %s -> %s\n", slug, target)
			}
		}
	}
	return nil
}
