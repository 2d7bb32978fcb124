package model

// Task is a discrete unit of work, always attached to a role.
type Task struct {
	ID                int64   `db:"id" json:"id"`
	Title             string  `db:"title" json:"title"`
	Notes             *string `db:"notes" json:"notes"`
	Status            string  `db:"status" json:"status"`
	Priority          int     `db:"priority" json:"priority"`
	EnergyRequirement *string `db:"energy_requirement" json:"energy_requirement"`
	TimeEstimate      *int    `db:"time_estimate" json:"time_estimate"`
	ProjectID         *int64  `db:"project_id" json:"project_id"`
	RoleID            int64   `db:"role_id" json:"role_id"`
	ParentTaskID      *int64  `db:"parent_task_id" json:"parent_task_id"`
	StartDate         *string `db:"start_date" json:"start_date"`
	Deadline          *string `db:"deadline" json:"deadline"`
	RemindDate        *string `db:"remind_date" json:"remind_date"`
	CreatedAt         string  `db:"created_at" json:"created_at"`
}

// TaskFull is a task enriched with the names of its related entities.
// The joins are LEFT JOINs so a task whose project or parent was deleted
// still comes back with the enrichment field null.
type TaskFull struct {
	Task
	RoleName    string  `db:"role_name" json:"role_name"`
	ProjectName *string `db:"project_name" json:"project_name"`
	ParentTitle *string `db:"parent_title" json:"parent_title"`
}

// TodayTask is a row of v_today_tasks.
type TodayTask struct {
	TaskFull
	IsOverdue bool `db:"is_overdue" json:"is_overdue"`
}

// OverdueTask is a row of v_overdue_tasks. DaysOverdue is a julian-day
// difference, so it is fractional-day-aware.
type OverdueTask struct {
	TaskFull
	DaysOverdue float64 `db:"days_overdue" json:"days_overdue"`
}

// StaleTask is a row of v_stale_tasks.
type StaleTask struct {
	TaskFull
	DaysStale float64 `db:"days_stale" json:"days_stale"`
}
