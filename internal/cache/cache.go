// Package cache is the local SQLite snapshot of the requirement and
// test-case lookup maps. It lets the dashboard render joined titles
// before the first fetch returns and lets exports annotate offline; the
// server copy is always authoritative and the cache is replaced
// wholesale after every successful fetch.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/covtrace/tracetriage/internal/model"
)

// DB wraps the SQLite cache database.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the cache database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func migrate(conn *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS requirements (
	id TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS test_cases (
	id TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);`
	_, err := conn.Exec(schema)
	return err
}

// ReplaceRequirements swaps the cached requirement map wholesale.
func (db *DB) ReplaceRequirements(reqs map[string]model.Requirement) error {
	return db.replace("requirements", func(insert func(id string, v any) error) error {
		for id, r := range reqs {
			if err := insert(id, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceTestCases swaps the cached test-case map wholesale.
func (db *DB) ReplaceTestCases(tcs map[string]model.TestCase) error {
	return db.replace("test_cases", func(insert func(id string, v any) error) error {
		for id, tc := range tcs {
			if err := insert(id, tc); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *DB) replace(table string, fill func(insert func(id string, v any) error) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO " + table + " (id, data, fetched_at) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	insert := func(id string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(id, string(data), now)
		return err
	}

	if err := fill(insert); err != nil {
		return err
	}
	return tx.Commit()
}

// Requirements loads the cached requirement map, empty when the cache
// has never been filled.
func (db *DB) Requirements() (map[string]model.Requirement, error) {
	out := make(map[string]model.Requirement)
	err := db.load("requirements", func(id string, data []byte) error {
		var r model.Requirement
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		out[id] = r
		return nil
	})
	return out, err
}

// TestCases loads the cached test-case map.
func (db *DB) TestCases() (map[string]model.TestCase, error) {
	out := make(map[string]model.TestCase)
	err := db.load("test_cases", func(id string, data []byte) error {
		var tc model.TestCase
		if err := json.Unmarshal(data, &tc); err != nil {
			return err
		}
		out[id] = tc
		return nil
	})
	return out, err
}

func (db *DB) load(table string, each func(id string, data []byte) error) error {
	rows, err := db.conn.Query("SELECT id, data FROM " + table)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return err
		}
		if err := each(id, []byte(data)); err != nil {
			return err
		}
	}
	return rows.Err()
}
