// Package store owns Project/Slide/Setting persistence. All queries use
// driver-portable SQL ($N placeholders, CURRENT_TIMESTAMP) so the same code
// runs on SQLite and PostgreSQL.
package store

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a project, slide, or setting row is absent.
var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}
