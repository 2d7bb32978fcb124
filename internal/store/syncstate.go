package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SyncStateLastSync is the watermark key for the Todoist completed-items pull.
const SyncStateLastSync = "todoist_last_sync"

// SyncStatus summarizes the Todoist sync ledger.
type SyncStatus struct {
	LastSync    *string `json:"last_sync"`
	SyncedItems int64   `json:"synced_items"`
}

// GetSyncState returns the value stored under key, or nil when unset.
func (s *Store) GetSyncState(ctx context.Context, key string) (*string, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		`SELECT value FROM todoist_sync_state WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sync state %q: %w", key, err)
	}
	return &value, nil
}

// SetSyncState stores value under key, replacing any previous value.
func (s *Store) SetSyncState(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todoist_sync_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write sync state %q: %w", key, err)
	}
	return nil
}

// HasSyncedItem reports whether an external item has already been imported.
func (s *Store) HasSyncedItem(ctx context.Context, externalID string) (bool, error) {
	var n int64
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM todoist_synced_items WHERE external_id = ?`, externalID)
	if err != nil {
		return false, fmt.Errorf("failed to check synced item %q: %w", externalID, err)
	}
	return n > 0, nil
}

// RecordSyncedItem marks an external item as imported. It reports whether the
// item was new; a repeated external id is a no-op, which is what makes the
// sync safe to rerun.
func (s *Store) RecordSyncedItem(ctx context.Context, externalID string, journalEntryID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO todoist_synced_items (external_id, journal_entry_id)
		VALUES (?, ?)`,
		externalID, journalEntryID)
	if err != nil {
		return false, fmt.Errorf("failed to record synced item %q: %w", externalID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetSyncStatus reports the watermark and how many items have been imported.
func (s *Store) GetSyncStatus(ctx context.Context) (*SyncStatus, error) {
	lastSync, err := s.GetSyncState(ctx, SyncStateLastSync)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM todoist_synced_items`); err != nil {
		return nil, fmt.Errorf("failed to count synced items: %w", err)
	}
	return &SyncStatus{LastSync: lastSync, SyncedItems: count}, nil
}
