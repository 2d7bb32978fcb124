package store

import (
	"fmt"
	"strings"

	"github.com/aidahq/aida/internal/model"
)

// pragmaScript configures the connection. Foreign-key enforcement must stay
// enabled for the ON DELETE {RESTRICT, SET NULL} semantics to hold.
var pragmaScript = fmt.Sprintf(`
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	PRAGMA busy_timeout = %d;
	PRAGMA foreign_keys = ON;
	PRAGMA temp_store = MEMORY;
`, BusyTimeoutMs)

// enumList renders an enum set as a SQL IN-list, e.g. 'a','b','c'.
func enumList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ",")
}

// schemaScript builds the idempotent schema. Every statement is
// CREATE ... IF NOT EXISTS, so re-running it is always safe. The enum CHECK
// constraints are generated from the model enum sets so the database and the
// argument validator can never drift apart, and the view thresholds come
// from the named policy constants.
func schemaScript() string {
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS roles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		type TEXT NOT NULL CHECK (type IN (%[1]s)),
		description TEXT,
		responsibilities TEXT NOT NULL DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN (%[2]s)),
		balance_target REAL CHECK (balance_target >= 0 AND balance_target <= 1),
		created_at TEXT NOT NULL DEFAULT (datetime('now','localtime')),
		updated_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
	);

	CREATE TRIGGER IF NOT EXISTS trg_roles_updated_at
	AFTER UPDATE ON roles
	BEGIN
		UPDATE roles SET updated_at = datetime('now','localtime') WHERE id = NEW.id;
	END;

	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE RESTRICT,
		status TEXT NOT NULL DEFAULT 'active' CHECK (status IN (%[3]s)),
		description TEXT NOT NULL,
		finish_criteria TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL CHECK (length(trim(title)) > 0),
		notes TEXT,
		status TEXT NOT NULL DEFAULT 'captured' CHECK (status IN (%[4]s)),
		priority INTEGER NOT NULL DEFAULT 0 CHECK (priority BETWEEN 0 AND 3),
		energy_requirement TEXT CHECK (energy_requirement IN (%[5]s)),
		time_estimate INTEGER CHECK (time_estimate > 0),
		project_id INTEGER REFERENCES projects(id) ON DELETE SET NULL,
		role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE RESTRICT,
		parent_task_id INTEGER REFERENCES tasks(id) ON DELETE SET NULL,
		start_date TEXT,
		deadline TEXT,
		remind_date TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL DEFAULT (datetime('now','localtime')),
		entry_type TEXT NOT NULL CHECK (entry_type IN (%[6]s)),
		content TEXT NOT NULL CHECK (length(trim(content)) > 0),
		related_task_id INTEGER REFERENCES tasks(id) ON DELETE SET NULL,
		related_project_id INTEGER REFERENCES projects(id) ON DELETE SET NULL,
		related_role_id INTEGER REFERENCES roles(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS todoist_sync_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS todoist_synced_items (
		external_id TEXT PRIMARY KEY,
		journal_entry_id INTEGER NOT NULL REFERENCES journal_entries(id),
		synced_at TEXT NOT NULL DEFAULT (datetime('now','localtime'))
	);

	CREATE INDEX IF NOT EXISTS idx_projects_role ON projects(role_id);
	CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);

	CREATE INDEX IF NOT EXISTS idx_tasks_role ON tasks(role_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_task_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(deadline) WHERE deadline IS NOT NULL;

	CREATE INDEX IF NOT EXISTS idx_journal_task ON journal_entries(related_task_id);
	CREATE INDEX IF NOT EXISTS idx_journal_project ON journal_entries(related_project_id);
	CREATE INDEX IF NOT EXISTS idx_journal_role ON journal_entries(related_role_id);
	CREATE INDEX IF NOT EXISTS idx_journal_type ON journal_entries(entry_type);
	CREATE INDEX IF NOT EXISTS idx_journal_timestamp ON journal_entries(timestamp);

	-- Tasks enriched with related entity names. LEFT JOINs so a task whose
	-- project or parent was deleted still returns with its FK column intact.
	CREATE VIEW IF NOT EXISTS v_tasks_full AS
	SELECT
		t.id, t.title, t.notes, t.status, t.priority, t.energy_requirement,
		t.time_estimate, t.project_id, t.role_id, t.parent_task_id,
		t.start_date, t.deadline, t.remind_date, t.created_at,
		r.name AS role_name,
		p.name AS project_name,
		pt.title AS parent_title
	FROM tasks t
	LEFT JOIN roles r ON r.id = t.role_id
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN tasks pt ON pt.id = t.parent_task_id;

	-- What counts as "today": started, due, due within the lookahead window
	-- with no start date set, or explicitly flagged for reminding today.
	CREATE VIEW IF NOT EXISTS v_today_tasks AS
	SELECT
		f.*,
		CASE WHEN f.deadline IS NOT NULL AND f.deadline < date('now','localtime')
			THEN 1 ELSE 0 END AS is_overdue
	FROM v_tasks_full f
	WHERE f.status NOT IN ('done','cancelled')
	  AND (
		(f.start_date IS NOT NULL AND f.start_date <= date('now','localtime'))
		OR (f.deadline IS NOT NULL AND f.deadline <= date('now','localtime'))
		OR (f.deadline IS NOT NULL AND f.start_date IS NULL
			AND f.deadline <= date('now','localtime','+%[7]d days'))
		OR (f.remind_date = date('now','localtime'))
	  );

	-- days_overdue is a julian-day difference: fractional-day-aware.
	CREATE VIEW IF NOT EXISTS v_overdue_tasks AS
	SELECT
		f.*,
		julianday('now','localtime') - julianday(f.deadline) AS days_overdue
	FROM v_tasks_full f
	WHERE f.status NOT IN ('done','cancelled')
	  AND f.deadline IS NOT NULL
	  AND f.deadline < date('now','localtime');

	-- Early-pipeline tasks that have sat too long without progressing.
	-- planned tasks are never flagged stale here.
	CREATE VIEW IF NOT EXISTS v_stale_tasks AS
	SELECT
		f.*,
		julianday('now','localtime') - julianday(f.created_at) AS days_stale
	FROM v_tasks_full f
	WHERE (f.status IN ('captured','clarified')
			AND julianday('now','localtime') - julianday(f.created_at) >= %[8]d)
	   OR (f.status = 'ready'
			AND julianday('now','localtime') - julianday(f.created_at) >= %[9]d);

	-- Progress is always recomputed from the tasks table; a project with
	-- zero tasks is 0%% complete, not undefined.
	CREATE VIEW IF NOT EXISTS v_projects_full AS
	SELECT
		p.id, p.name, p.role_id, p.status, p.description, p.finish_criteria,
		p.created_at,
		r.name AS role_name,
		(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) AS total_tasks,
		(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id
			AND t.status = 'done') AS done_tasks,
		(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id
			AND t.status NOT IN ('done','cancelled')) AS active_tasks,
		CASE WHEN (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) = 0
			THEN 0.0
			ELSE (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id
					AND t.status = 'done') * 100.0
				/ (SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id)
		END AS percent_complete
	FROM projects p
	LEFT JOIN roles r ON r.id = p.role_id;

	-- Per-role workload counts, computed against live table state.
	CREATE VIEW IF NOT EXISTS v_roles_summary AS
	SELECT
		r.id, r.name, r.type, r.status, r.balance_target,
		(SELECT COUNT(*) FROM projects p WHERE p.role_id = r.id
			AND p.status = 'active') AS active_projects,
		(SELECT COUNT(*) FROM projects p WHERE p.role_id = r.id
			AND p.status = 'on_hold') AS paused_projects,
		(SELECT COUNT(*) FROM tasks t WHERE t.role_id = r.id
			AND t.status = 'captured') AS captured_tasks,
		(SELECT COUNT(*) FROM tasks t WHERE t.role_id = r.id
			AND t.status = 'clarified') AS clarified_tasks,
		(SELECT COUNT(*) FROM tasks t WHERE t.role_id = r.id
			AND t.status = 'ready') AS ready_tasks,
		(SELECT COUNT(*) FROM tasks t WHERE t.role_id = r.id
			AND t.status = 'planned') AS planned_tasks,
		(SELECT COUNT(*) FROM tasks t WHERE t.role_id = r.id
			AND t.status NOT IN ('done','cancelled')) AS open_tasks,
		(SELECT COUNT(*) FROM tasks t WHERE t.role_id = r.id
			AND t.status NOT IN ('done','cancelled')
			AND t.deadline IS NOT NULL
			AND t.deadline < date('now','localtime')) AS overdue_tasks
	FROM roles r;
	`,
		enumList(model.RoleTypes()),
		enumList(model.RoleStatuses()),
		enumList(model.ProjectStatuses()),
		enumList(model.TaskStatuses()),
		enumList(model.EnergyLevels()),
		enumList(model.EntryTypes()),
		DeadlineLookaheadDays,
		StaleCapturedDays,
		StaleReadyDays,
	)
}
