// Package storage persists citation networks to a local SQLite file.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database holding one citation network.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database file and ensures the schema.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	d := &DB{db: db}
	if err := d.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the nodes and edges tables. The start/end pair
// duplicates the year for timeline visualization tools, and ordervar
// is the normalized time coordinate (year-1900)/100 those tools
// consume; neither is read back into the network model.
func (d *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS nodes (
			bibcode TEXT PRIMARY KEY,
			author TEXT,
			title TEXT,
			start TEXT,
			"end" TEXT,
			ordervar REAL,
			citation TEXT,
			reference TEXT,
			judgement INTEGER NOT NULL DEFAULT 0,
			cluster_id INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS edges (
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			weight INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (source, target)
		);

		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// CountNodes returns the number of stored nodes.
func (d *DB) CountNodes() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM nodes").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// CountEdges returns the number of stored edges.
func (d *DB) CountEdges() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM edges").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
