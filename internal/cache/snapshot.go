package cache

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"tsdocgraph/internal/node"
)

// Snapshot persists the symbol cache's current contents to a SQLite
// database at path, so a host process restart can warm-start instead
// of cold-parsing and re-linking every file. AST and export-map cache
// entries hold tree-sitter AST pointers meaningful only within the
// process that parsed them, so only the symbol cache — plain,
// gob-encodable Node trees — is snapshotted; the other two simply
// repopulate on first access after a restart.
func (c *Cache) Snapshot(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := initSnapshotSchema(db); err != nil {
		return fmt.Errorf("init snapshot schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	for _, key := range c.symbols.Keys() {
		n, ok := c.symbols.Peek(key)
		if !ok {
			continue
		}
		payload, err := encodeNode(n)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec(
			`INSERT INTO symbols (id, payload) VALUES (?, ?)
			 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
			key, payload,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadSnapshot repopulates the symbol cache from a database written by
// Snapshot. Existing entries are left in place; the snapshot merges in
// on top.
func (c *Cache) LoadSnapshot(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := initSnapshotSchema(db); err != nil {
		return fmt.Errorf("init snapshot schema: %w", err)
	}

	rows, err := db.Query(`SELECT id, payload FROM symbols`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var payload []byte
		if err := rows.Scan(&id, &payload); err != nil {
			return err
		}
		n, err := decodeNode(payload)
		if err != nil {
			return err
		}
		c.symbols.Add(id, n)
	}
	return rows.Err()
}

func initSnapshotSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS symbols (
		id      TEXT PRIMARY KEY,
		payload BLOB
	);`)
	return err
}

func encodeNode(n *node.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeNode(payload []byte) (*node.Node, error) {
	var n node.Node
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}
