// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the full catalog to catalogDir/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	scholars, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(scholars)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.catalogDir, indexDir, "export.yaml")
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the full catalog to catalogDir/index/export.json.
func (s *Store) ExportJSON(ctx context.Context) error {
	scholars, err := s.GetAll(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(scholars, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.catalogDir, indexDir, "export.json")
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
