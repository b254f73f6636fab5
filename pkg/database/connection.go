package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"kraban/pkg/utils"
)

// Dialect is the SQL flavour of a connection.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

// DB is a database connection that knows its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Connect opens the mirror database. postgres:// and postgresql:// URLs go to
// PostgreSQL, anything else is a SQLite file path.
func Connect(dsn string) (*DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		return &DB{DB: db, Dialect: Postgres}, nil
	}

	dbPath := utils.ExpandHome(dsn)

	// Create the directory structure if it doesn't exist
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
	}

	// SQLite will create the database file if it doesn't exist
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	return &DB{DB: db, Dialect: SQLite}, nil
}

// EnsureSchema creates the database schema if it doesn't exist
func EnsureSchema(db *DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			priority TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			column_name TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			priority TEXT,
			difficulty TEXT,
			due_date TEXT,
			due_date_manually_set BOOLEAN NOT NULL DEFAULT FALSE,
			done BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (project_id, column_name, position)
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders into the dialect's form.
func (db *DB) rebind(query string) string {
	if db.Dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
