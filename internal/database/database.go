package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to PostgreSQL when databaseURL is set, otherwise to a local
// SQLite file. Foreign keys are enabled on SQLite so project deletes cascade.
func Open(databaseURL, sqlitePath string) (*sql.DB, error) {
	driver := "sqlite3"
	dsn := "file:" + sqlitePath + "?_foreign_keys=on"
	if databaseURL != "" {
		driver = "postgres"
		dsn = databaseURL
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
