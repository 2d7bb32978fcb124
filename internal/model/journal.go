package model

// JournalEntry is an append-only log record. Entries are immutable: there is
// no update or delete operation anywhere in the API surface, so a correction
// is always a new entry.
type JournalEntry struct {
	ID               int64   `db:"id" json:"id"`
	Timestamp        string  `db:"timestamp" json:"timestamp"`
	EntryType        string  `db:"entry_type" json:"entry_type"`
	Content          string  `db:"content" json:"content"`
	RelatedTaskID    *int64  `db:"related_task_id" json:"related_task_id"`
	RelatedProjectID *int64  `db:"related_project_id" json:"related_project_id"`
	RelatedRoleID    *int64  `db:"related_role_id" json:"related_role_id"`
}

// JournalEntryFull is an entry enriched with the names of its related
// entities. All joins are LEFT JOINs; an entry outlives the task, project,
// or role it references.
type JournalEntryFull struct {
	JournalEntry
	TaskTitle   *string `db:"task_title" json:"task_title"`
	ProjectName *string `db:"project_name" json:"project_name"`
	RoleName    *string `db:"role_name" json:"role_name"`
}
