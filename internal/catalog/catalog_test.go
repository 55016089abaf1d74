// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	catalogDir := filepath.Join(tmpDir, "catalog")
	if err := os.MkdirAll(filepath.Join(catalogDir, recordsDir), 0o755); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(types.CatalogConfig{CatalogDir: catalogDir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, catalogDir
}

func writeRecord(t *testing.T, catalogDir string, scholar types.Scholar) string {
	t.Helper()
	data, err := yaml.Marshal(&scholar)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(catalogDir, recordsDir, types.Slug(scholar.Name)+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sampleScholar() types.Scholar {
	return types.Scholar{
		Name:    "Michel Foucault",
		Summary: "Analyzed power and knowledge in modern institutions",
		Taxonomies: map[string][]string{
			types.TaxonomyTheme: {"Power", "Knowledge"},
		},
		Works: []types.Work{
			{Title: "Discipline and Punish", Year: 1975},
		},
		Appearances: []types.Appearance{
			{Title: "Debate on Human Nature", Year: 1971, Venue: "Eindhoven"},
		},
		Connections: []string{"judith-butler"},
	}
}

// --- store ---

func TestUpsertAndGet(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	want := sampleScholar()
	if err := store.Upsert(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "michel-foucault")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
}

func TestUpsertReplacesExisting(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	first := sampleScholar()
	if err := store.Upsert(ctx, first); err != nil {
		t.Fatal(err)
	}

	second := first
	second.Summary = "Revised summary"
	if err := store.Upsert(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "michel-foucault")
	if err != nil {
		t.Fatal(err)
	}
	if got.Summary != "Revised summary" {
		t.Errorf("summary = %q, want the replacement", got.Summary)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestUpsertRejectsNamelessRecord(t *testing.T) {
	store, _ := testSetup(t)
	if err := store.Upsert(context.Background(), types.Scholar{}); err == nil {
		t.Error("want error for record without a name")
	}
}

func TestGetNotFound(t *testing.T) {
	store, _ := testSetup(t)
	_, err := store.Get(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetAllSlugOrder(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	for _, name := range []string{"Judith Butler", "Michel Foucault", "Hannah Arendt"} {
		if err := store.Upsert(ctx, types.Scholar{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	scholars, err := store.GetAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range scholars {
		got = append(got, s.Name)
	}
	want := []string{"Hannah Arendt", "Judith Butler", "Michel Foucault"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GetAll order = %v, want %v", got, want)
	}
}

func TestDelete(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, sampleScholar()); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "michel-foucault"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "michel-foucault"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

// --- ingest ---

func TestIngestNewAndSkip(t *testing.T) {
	store, catalogDir := testSetup(t)
	ctx := context.Background()

	writeRecord(t, catalogDir, sampleScholar())
	writeRecord(t, catalogDir, types.Scholar{Name: "Judith Butler",
		Connections: []string{"michel-foucault"}})

	var out bytes.Buffer
	summary, err := store.Ingest(ctx, &out)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Ingested != 2 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want 2 ingested", summary)
	}

	// Second run: nothing changed, everything skipped.
	out.Reset()
	summary, err = store.Ingest(ctx, &out)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 2 || summary.Ingested != 0 {
		t.Errorf("summary = %+v, want 2 skipped", summary)
	}
}

func TestIngestDetectsChangedFile(t *testing.T) {
	store, catalogDir := testSetup(t)
	ctx := context.Background()

	path := writeRecord(t, catalogDir, sampleScholar())
	if _, err := store.Ingest(ctx, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}

	changed := sampleScholar()
	changed.Summary = "Rewritten"
	data, err := yaml.Marshal(&changed)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	// Force a distinct mod time even on coarse filesystems.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Ingest(ctx, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Updated != 1 {
		t.Fatalf("summary = %+v, want 1 updated", summary)
	}

	got, err := store.Get(ctx, "michel-foucault")
	if err != nil {
		t.Fatal(err)
	}
	if got.Summary != "Rewritten" {
		t.Errorf("summary = %q, want the updated text", got.Summary)
	}
}

func TestIngestBadFileFailsRecordOnly(t *testing.T) {
	store, catalogDir := testSetup(t)

	writeRecord(t, catalogDir, sampleScholar())
	bad := filepath.Join(catalogDir, recordsDir, "broken.yaml")
	if err := os.WriteFile(bad, []byte("works: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Ingest(context.Background(), &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Ingested != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 1 ingested, 1 failed", summary)
	}
}

func TestIngestWarnsOnOneWayLinks(t *testing.T) {
	store, catalogDir := testSetup(t)

	// Foucault links to Butler; Butler does not link back, and the link
	// to a missing scholar is flagged too.
	scholar := sampleScholar()
	scholar.Connections = []string{"judith-butler", "gilles-deleuze"}
	writeRecord(t, catalogDir, scholar)
	writeRecord(t, catalogDir, types.Scholar{Name: "Judith Butler"})

	var out bytes.Buffer
	if _, err := store.Ingest(context.Background(), &out); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "one-way link michel-foucault -> judith-butler") {
		t.Errorf("missing one-way warning in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "unknown scholar gilles-deleuze") {
		t.Errorf("missing unknown-target warning in output:\n%s", out.String())
	}
}

// --- export ---

func TestExportYAMLAndJSON(t *testing.T) {
	store, catalogDir := testSetup(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, sampleScholar()); err != nil {
		t.Fatal(err)
	}

	if err := store.ExportYAML(ctx); err != nil {
		t.Fatal(err)
	}
	yamlData, err := os.ReadFile(filepath.Join(catalogDir, indexDir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML []types.Scholar
	if err := yaml.Unmarshal(yamlData, &fromYAML); err != nil {
		t.Fatal(err)
	}
	if len(fromYAML) != 1 || fromYAML[0].Name != "Michel Foucault" {
		t.Errorf("YAML export = %+v", fromYAML)
	}

	if err := store.ExportJSON(ctx); err != nil {
		t.Fatal(err)
	}
	jsonData, err := os.ReadFile(filepath.Join(catalogDir, indexDir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON []types.Scholar
	if err := json.Unmarshal(jsonData, &fromJSON); err != nil {
		t.Fatal(err)
	}
	if len(fromJSON) != 1 || fromJSON[0].Name != "Michel Foucault" {
		t.Errorf("JSON export = %+v", fromJSON)
	}
}
