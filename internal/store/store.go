// Package store handles SQLite database operations.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store is the SQLite database handle. One Store per process; every query
// function takes it explicitly so the core stays testable in isolation.
type Store struct {
	db *sqlx.DB
}

var (
	// ErrTaskNotFound indicates an update/delete targeted a missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrRoleNotFound indicates an update/delete targeted a missing role.
	ErrRoleNotFound = errors.New("role not found")
	// ErrProjectNotFound indicates an update/delete targeted a missing project.
	ErrProjectNotFound = errors.New("project not found")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrRoleNotFound) ||
		errors.Is(err, ErrProjectNotFound)
}

// DB returns the underlying sqlx.DB for advanced queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Store, error) {
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	// A connection pool larger than one would hand out fresh, empty
	// in-memory databases.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// initialize applies the PRAGMAs and the idempotent schema script. Safe to
// run against an already-initialized database.
func (s *Store) initialize() error {
	if _, err := s.db.Exec(pragmaScript); err != nil {
		return fmt.Errorf("failed to configure database: %w", err)
	}
	if _, err := s.db.Exec(schemaScript()); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return nil
}
