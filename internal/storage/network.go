package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"citnet/internal/network"
)

// SaveOptions controls how a network is written out.
type SaveOptions struct {
	// JudgementEdgesOnly restricts saved edges to those whose source
	// node is a judgement-sample node.
	JudgementEdgesOnly bool
}

// SaveNetwork replaces the stored node and edge tables with the
// network's current contents.
func (d *DB) SaveNetwork(net *network.Network, opts SaveOptions) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM nodes"); err != nil {
		return fmt.Errorf("clearing nodes table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM edges"); err != nil {
		return fmt.Errorf("clearing edges table: %w", err)
	}

	nodeStmt, err := tx.Prepare(`
		INSERT INTO nodes (bibcode, author, title, start, "end", ordervar, citation, reference, judgement, cluster_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing nodes insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, node := range net.Nodes() {
		_, err := nodeStmt.Exec(
			node.Bibcode,
			node.Authors(),
			node.Title,
			node.Year,
			node.Year,
			ordervar(node.Year),
			strings.Join(node.CitationBibcodes, "; "),
			strings.Join(node.ReferenceBibcodes, "; "),
			boolToInt(node.Judgement),
			node.ModularityID,
		)
		if err != nil {
			return fmt.Errorf("inserting node %s: %w", node.Bibcode, err)
		}
	}

	edgeStmt, err := tx.Prepare("INSERT INTO edges (source, target, weight) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing edges insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range net.Edges() {
		if opts.JudgementEdgesOnly {
			src := net.Node(e.Source)
			if src == nil || !src.Judgement {
				continue
			}
		}
		if _, err := edgeStmt.Exec(e.Source, e.Target, e.Weight); err != nil {
			return fmt.Errorf("inserting edge %s -> %s: %w", e.Source, e.Target, err)
		}
	}

	return tx.Commit()
}

// LoadNetwork reads all stored nodes and edges into the network, in
// the order they were written.
func (d *DB) LoadNetwork(net *network.Network) error {
	rows, err := d.db.Query(`
		SELECT bibcode, author, title, start, citation, reference, judgement, cluster_id
		FROM nodes
		ORDER BY rowid
	`)
	if err != nil {
		return fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return fmt.Errorf("scanning node: %w", err)
		}
		net.InsertNode(node)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	edgeRows, err := d.db.Query("SELECT source, target, weight FROM edges ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("querying edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var e network.Edge
		if err := edgeRows.Scan(&e.Source, &e.Target, &e.Weight); err != nil {
			return fmt.Errorf("scanning edge: %w", err)
		}
		net.AddEdge(e)
	}
	return edgeRows.Err()
}

// scanNode reconstructs a node from one row of the nodes table.
func scanNode(rows *sql.Rows) (*network.Node, error) {
	var (
		bibcode, year         string
		author, title         sql.NullString
		citation, reference   sql.NullString
		judgement, modularity int
	)
	err := rows.Scan(&bibcode, &author, &title, &year, &citation, &reference, &judgement, &modularity)
	if err != nil {
		return nil, err
	}
	return &network.Node{
		Bibcode:           bibcode,
		Year:              year,
		AuthorList:        splitJoined(author.String),
		Title:             title.String,
		CitationBibcodes:  splitJoined(citation.String),
		ReferenceBibcodes: splitJoined(reference.String),
		ModularityID:      modularity,
		Judgement:         judgement != 0,
	}, nil
}

// ordervar is the normalized time coordinate stored for downstream
// visualization. Unparseable years map to 0.
func ordervar(year string) float64 {
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return float64(y-1900) / 100
}

func splitJoined(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "; ")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
