// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists scholar records in a local SQLite database and
// supports YAML ingest and export. It is the record store the relevance
// engine reads its corpus from; the engine itself never touches storage.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-atlas/pkg/types"
)

const (
	recordsDir = "records"
	indexDir   = "index"
	dbFile     = "catalog.db"
)

// ErrNotFound is returned when a slug has no record.
var ErrNotFound = errors.New("scholar not found")

// ErrCorpusUnavailable wraps failures to read the full corpus. Callers that
// need a corpus (search, graph) cannot proceed and propagate it.
var ErrCorpusUnavailable = errors.New("corpus unavailable")

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
}

// NewStore opens or creates the catalog database at
// catalogDir/index/catalog.db, creating the schema if needed.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.CatalogDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, catalogDir: cfg.CatalogDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scholars (
			slug TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			summary TEXT,
			taxonomies TEXT,
			works TEXT,
			appearances TEXT,
			connections TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			slug TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert inserts or replaces a scholar record keyed by its slug.
func (s *Store) Upsert(ctx context.Context, scholar types.Scholar) error {
	if scholar.Name == "" {
		return fmt.Errorf("scholar record has no name")
	}
	return s.upsertTx(ctx, s.db, scholar)
}

// execer covers both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) upsertTx(ctx context.Context, ex execer, scholar types.Scholar) error {
	taxJSON, _ := json.Marshal(scholar.Taxonomies)
	worksJSON, _ := json.Marshal(scholar.Works)
	appJSON, _ := json.Marshal(scholar.Appearances)
	connJSON, _ := json.Marshal(scholar.Connections)

	_, err := ex.ExecContext(ctx,
		`INSERT INTO scholars (slug, name, summary, taxonomies, works, appearances, connections)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
			name=excluded.name, summary=excluded.summary,
			taxonomies=excluded.taxonomies, works=excluded.works,
			appearances=excluded.appearances, connections=excluded.connections`,
		types.Slug(scholar.Name), scholar.Name, scholar.Summary,
		string(taxJSON), string(worksJSON), string(appJSON), string(connJSON),
	)
	if err != nil {
		return fmt.Errorf("upserting scholar %s: %w", types.Slug(scholar.Name), err)
	}
	return nil
}

// Get returns the record for a slug, or ErrNotFound.
func (s *Store) Get(ctx context.Context, slug string) (types.Scholar, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, summary, taxonomies, works, appearances, connections
		 FROM scholars WHERE slug = ?`, slug)

	scholar, err := scanScholar(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Scholar{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
		}
		return types.Scholar{}, fmt.Errorf("reading scholar %s: %w", slug, err)
	}
	return scholar, nil
}

// GetAll returns every record in slug order. Failures wrap
// ErrCorpusUnavailable.
func (s *Store) GetAll(ctx context.Context) ([]types.Scholar, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, summary, taxonomies, works, appearances, connections
		 FROM scholars ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	defer rows.Close()

	var scholars []types.Scholar
	for rows.Next() {
		scholar, err := scanScholar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
		}
		scholars = append(scholars, scholar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	return scholars, nil
}

// Delete removes a record. Deleting an absent slug returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scholars WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("deleting scholar %s: %w", slug, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM scholars`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting scholars: %w", err)
	}
	return n, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScholar(row rowScanner) (types.Scholar, error) {
	var (
		scholar  types.Scholar
		summary  sql.NullString
		taxJSON  sql.NullString
		workJSON sql.NullString
		appJSON  sql.NullString
		connJSON sql.NullString
	)
	if err := row.Scan(&scholar.Name, &summary, &taxJSON, &workJSON, &appJSON, &connJSON); err != nil {
		return types.Scholar{}, err
	}
	scholar.Summary = summary.String
	if taxJSON.Valid {
		json.Unmarshal([]byte(taxJSON.String), &scholar.Taxonomies)
	}
	if workJSON.Valid {
		json.Unmarshal([]byte(workJSON.String), &scholar.Works)
	}
	if appJSON.Valid {
		json.Unmarshal([]byte(appJSON.String), &scholar.Appearances)
	}
	if connJSON.Valid {
		json.Unmarshal([]byte(connJSON.String), &scholar.Connections)
	}
	return scholar, nil
}
