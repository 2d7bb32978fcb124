package model

// Role is a recurring life/work context used to group tasks and projects
// and to measure time-balance across contexts.
type Role struct {
	ID               int64    `db:"id" json:"id"`
	Name             string   `db:"name" json:"name"`
	Type             string   `db:"type" json:"type"`
	Description      *string  `db:"description" json:"description"`
	Responsibilities []string `db:"-" json:"responsibilities"`
	Status           string   `db:"status" json:"status"`
	BalanceTarget    *float64 `db:"balance_target" json:"balance_target"`
	CreatedAt        string   `db:"created_at" json:"created_at"`
	UpdatedAt        string   `db:"updated_at" json:"updated_at"`
}

// RoleSummary is a row of v_roles_summary: per-role project and task counts
// computed from live table state at query time.
type RoleSummary struct {
	ID             int64    `db:"id" json:"id"`
	Name           string   `db:"name" json:"name"`
	Type           string   `db:"type" json:"type"`
	Status         string   `db:"status" json:"status"`
	BalanceTarget  *float64 `db:"balance_target" json:"balance_target"`
	ActiveProjects int      `db:"active_projects" json:"active_projects"`
	PausedProjects int      `db:"paused_projects" json:"paused_projects"`
	CapturedTasks  int      `db:"captured_tasks" json:"captured_tasks"`
	ClarifiedTasks int      `db:"clarified_tasks" json:"clarified_tasks"`
	ReadyTasks     int      `db:"ready_tasks" json:"ready_tasks"`
	PlannedTasks   int      `db:"planned_tasks" json:"planned_tasks"`
	OpenTasks      int      `db:"open_tasks" json:"open_tasks"`
	OverdueTasks   int      `db:"overdue_tasks" json:"overdue_tasks"`
}
