package test

import (
	"database/sql"
	"log"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"todos/internal/adapter/database/sqlite"
)

// InitTestDB opens a private in-memory database with the schema applied.
func InitTestDB() *sqlite.DB {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")

	if err != nil {
		log.Fatal(err)
	}

	// one connection, otherwise every pooled connection sees its own empty database
	db.SetMaxOpenConns(1)

	if err := sqlite.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	return sqlite.Wrap(db)
}

func CleanDB(t *testing.T, db *sqlite.DB) {
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT IN ('sqlite_sequence', 'schema_migrations')")
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	var tables []string

	for rows.Next() {
		var table string

		if err := rows.Scan(&table); err != nil {
			rows.Close()
			t.Fatalf("Failed to scan table name: %v", err)
		}

		tables = append(tables, strings.TrimSpace(table))
	}

	rows.Close()

	// children first so foreign keys hold
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.Exec("DELETE FROM " + tables[i]); err != nil {
			t.Fatalf("Failed to clean table %s: %v", tables[i], err)
		}
	}
}
