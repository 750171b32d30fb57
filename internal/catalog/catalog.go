// Package catalog persists a summary row per converted document in SQLite.
// The index command uses it to keep an inventory of design files: path,
// variant, schema version, node count, and the canonical content digest.
//
// Reads always order by path so listings are deterministic.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is one cataloged document.
type Entry struct {
	Path      string `json:"path"`
	FileType  string `json:"fileType"`
	Version   int64  `json:"version"`
	NodeCount int64  `json:"nodeCount"`
	Digest    string `json:"digest"`
}

// Catalog wraps the SQLite database holding document summaries.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens the catalog database at path. Applies pragmas and
// the schema; idempotent.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to catalog database: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent upserts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("executing %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying catalog schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Upsert inserts or replaces the row for e.Path.
func (c *Catalog) Upsert(ctx context.Context, e Entry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO documents (path, file_type, version, node_count, digest)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			file_type = excluded.file_type,
			version = excluded.version,
			node_count = excluded.node_count,
			digest = excluded.digest`,
		e.Path, e.FileType, e.Version, e.NodeCount, e.Digest)
	if err != nil {
		return fmt.Errorf("upserting %q: %w", e.Path, err)
	}
	return nil
}

// Get returns the entry for path, or sql.ErrNoRows wrapped if absent.
func (c *Catalog) Get(ctx context.Context, path string) (Entry, error) {
	var e Entry
	err := c.db.QueryRowContext(ctx, `
		SELECT path, file_type, version, node_count, digest
		FROM documents WHERE path = ?`, path).
		Scan(&e.Path, &e.FileType, &e.Version, &e.NodeCount, &e.Digest)
	if err != nil {
		return Entry{}, fmt.Errorf("reading catalog entry %q: %w", path, err)
	}
	return e, nil
}

// List returns all entries ordered by path.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT path, file_type, version, node_count, digest
		FROM documents ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.FileType, &e.Version, &e.NodeCount, &e.Digest); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog rows: %w", err)
	}
	return entries, nil
}
