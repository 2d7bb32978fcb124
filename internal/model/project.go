package model

// FinishCriterion is one item of a project's completion checklist.
type FinishCriterion struct {
	Criterion string `json:"criterion"`
	Done      bool   `json:"done"`
}

// Project is a named grouping of tasks within one role. Its completion
// criteria are independent of task completion.
type Project struct {
	ID             int64             `db:"id" json:"id"`
	Name           string            `db:"name" json:"name"`
	RoleID         int64             `db:"role_id" json:"role_id"`
	Status         string            `db:"status" json:"status"`
	Description    string            `db:"description" json:"description"`
	FinishCriteria []FinishCriterion `db:"-" json:"finish_criteria"`
	CreatedAt      string            `db:"created_at" json:"created_at"`
}

// ProjectFull is a row of v_projects_full: a project enriched with its role
// name and task-derived progress. The progress fields are always recomputed
// from the tasks table, never stored.
type ProjectFull struct {
	Project
	RoleName        string  `db:"role_name" json:"role_name"`
	TotalTasks      int     `db:"total_tasks" json:"total_tasks"`
	DoneTasks       int     `db:"done_tasks" json:"done_tasks"`
	ActiveTasks     int     `db:"active_tasks" json:"active_tasks"`
	PercentComplete float64 `db:"percent_complete" json:"percent_complete"`
}
