package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aidahq/aida/internal/dates"
	"github.com/aidahq/aida/internal/model"
)

// CreateEntryInput is the validated input for CreateEntry. Timestamp is
// optional; the database stamps the current local time when it is absent.
type CreateEntryInput struct {
	EntryType        string  `json:"entry_type"`
	Content          string  `json:"content"`
	Timestamp        *string `json:"timestamp"`
	RelatedTaskID    *int64  `json:"related_task_id"`
	RelatedProjectID *int64  `json:"related_project_id"`
	RelatedRoleID    *int64  `json:"related_role_id"`
}

// journalSelect enriches entries with the names of whatever they reference.
// Journal entries are append-only, so repeated reads of the same entry always
// agree except for referent names, which follow renames.
const journalSelect = `
	SELECT j.*,
		t.title AS task_title,
		p.name AS project_name,
		r.name AS role_name
	FROM journal_entries j
	LEFT JOIN tasks t ON t.id = j.related_task_id
	LEFT JOIN projects p ON p.id = j.related_project_id
	LEFT JOIN roles r ON r.id = j.related_role_id`

// CreateEntry appends a journal entry and returns the created row.
func (s *Store) CreateEntry(ctx context.Context, in CreateEntryInput) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	var err error
	if in.Timestamp != nil {
		err = s.db.QueryRowxContext(ctx, `
			INSERT INTO journal_entries
				(entry_type, content, timestamp, related_task_id, related_project_id, related_role_id)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING *`,
			in.EntryType, in.Content, *in.Timestamp,
			in.RelatedTaskID, in.RelatedProjectID, in.RelatedRoleID,
		).StructScan(&entry)
	} else {
		err = s.db.QueryRowxContext(ctx, `
			INSERT INTO journal_entries
				(entry_type, content, related_task_id, related_project_id, related_role_id)
			VALUES (?, ?, ?, ?, ?)
			RETURNING *`,
			in.EntryType, in.Content,
			in.RelatedTaskID, in.RelatedProjectID, in.RelatedRoleID,
		).StructScan(&entry)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	return &entry, nil
}

// GetEntry returns an enriched entry, or nil when the id does not exist.
func (s *Store) GetEntry(ctx context.Context, id int64) (*model.JournalEntryFull, error) {
	var entry model.JournalEntryFull
	err := s.db.GetContext(ctx, &entry, journalSelect+` WHERE j.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry %d: %w", id, err)
	}
	return &entry, nil
}

// GetEntriesByTask returns a task's entries in chronological order.
func (s *Store) GetEntriesByTask(ctx context.Context, taskID int64) ([]model.JournalEntryFull, error) {
	return s.selectEntries(ctx,
		journalSelect+` WHERE j.related_task_id = ? ORDER BY j.timestamp ASC, j.id ASC`, taskID)
}

// GetEntriesByProject returns a project's entries in chronological order.
func (s *Store) GetEntriesByProject(ctx context.Context, projectID int64) ([]model.JournalEntryFull, error) {
	return s.selectEntries(ctx,
		journalSelect+` WHERE j.related_project_id = ? ORDER BY j.timestamp ASC, j.id ASC`, projectID)
}

// GetEntriesByRole returns a role's entries, newest first.
func (s *Store) GetEntriesByRole(ctx context.Context, roleID int64) ([]model.JournalEntryFull, error) {
	return s.selectEntries(ctx,
		journalSelect+` WHERE j.related_role_id = ? ORDER BY j.timestamp DESC, j.id DESC`, roleID)
}

// GetEntriesByType returns entries of one type, newest first, optionally
// capped at limit. A nil or non-positive limit means no cap.
func (s *Store) GetEntriesByType(ctx context.Context, entryType string, limit *int64) ([]model.JournalEntryFull, error) {
	query := journalSelect + ` WHERE j.entry_type = ? ORDER BY j.timestamp DESC, j.id DESC`
	args := []any{entryType}
	if limit != nil && *limit > 0 {
		query += ` LIMIT ?`
		args = append(args, *limit)
	}
	return s.selectEntries(ctx, query, args...)
}

// GetEntriesByDateRange returns entries whose timestamp falls on a date in
// [start, end], in chronological order. Bounds are inclusive calendar dates.
func (s *Store) GetEntriesByDateRange(ctx context.Context, start, end string) ([]model.JournalEntryFull, error) {
	return s.selectEntries(ctx,
		journalSelect+` WHERE date(j.timestamp) BETWEEN ? AND ? ORDER BY j.timestamp ASC, j.id ASC`,
		start, end)
}

// GetEntriesForDate returns a single day's entries in chronological order.
// An empty day defaults to today.
func (s *Store) GetEntriesForDate(ctx context.Context, day string) ([]model.JournalEntryFull, error) {
	if day == "" {
		day = dates.Today()
	}
	return s.selectEntries(ctx,
		journalSelect+` WHERE date(j.timestamp) = ? ORDER BY j.timestamp ASC, j.id ASC`, day)
}

func (s *Store) selectEntries(ctx context.Context, query string, args ...any) ([]model.JournalEntryFull, error) {
	entries := []model.JournalEntryFull{}
	if err := s.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	return entries, nil
}
