package store

import (
	"errors"
	"fmt"
	"os"
)

// DatabaseFiles returns the database file and its WAL/SHM siblings. The trio
// is managed as a unit: deleting one without the others is never correct.
func DatabaseFiles(path string) []string {
	return []string{path, path + "-wal", path + "-shm"}
}

// DeleteDatabase removes the database file and its WAL/SHM siblings.
// Missing files are not an error.
func DeleteDatabase(path string) error {
	for _, p := range DatabaseFiles(path) {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// ResetDatabase deletes the database files and recreates an empty schema.
func ResetDatabase(path string) (*Store, error) {
	if err := DeleteDatabase(path); err != nil {
		return nil, err
	}
	return Open(path)
}
