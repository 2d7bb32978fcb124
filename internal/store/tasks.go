package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aidahq/aida/internal/model"
)

// CreateTaskInput is the validated input for CreateTask. Field names match
// the argument schema; the dispatcher decodes the normalized object into it.
type CreateTaskInput struct {
	Title             string  `json:"title"`
	Notes             *string `json:"notes"`
	Status            string  `json:"status"`
	Priority          int     `json:"priority"`
	EnergyRequirement *string `json:"energy_requirement"`
	TimeEstimate      *int    `json:"time_estimate"`
	ProjectID         *int64  `json:"project_id"`
	RoleID            int64   `json:"role_id"`
	ParentTaskID      *int64  `json:"parent_task_id"`
	StartDate         *string `json:"start_date"`
	Deadline          *string `json:"deadline"`
	RemindDate        *string `json:"remind_date"`
}

// UpdateTaskInput carries a partial update; nil fields are left unchanged.
type UpdateTaskInput struct {
	ID                int64   `json:"id"`
	Title             *string `json:"title"`
	Notes             *string `json:"notes"`
	Status            *string `json:"status"`
	Priority          *int    `json:"priority"`
	EnergyRequirement *string `json:"energy_requirement"`
	TimeEstimate      *int    `json:"time_estimate"`
	ProjectID         *int64  `json:"project_id"`
	RoleID            *int64  `json:"role_id"`
	ParentTaskID      *int64  `json:"parent_task_id"`
	StartDate         *string `json:"start_date"`
	Deadline          *string `json:"deadline"`
	RemindDate        *string `json:"remind_date"`
}

// TaskFilter narrows ListTasks. An explicit Status filter wins over the
// default exclusion of terminal statuses.
type TaskFilter struct {
	Status           *string `json:"status"`
	RoleID           *int64  `json:"role_id"`
	ProjectID        *int64  `json:"project_id"`
	IncludeCompleted bool    `json:"include_completed"`
}

// taskOrder is the load-bearing task ordering: overdue first, then priority
// descending, then deadline ascending with missing deadlines last.
const taskOrder = ` ORDER BY (f.deadline IS NOT NULL AND f.deadline < date('now','localtime')) DESC,
	f.priority DESC, COALESCE(f.deadline, '9999-12-31') ASC, f.id ASC`

// CreateTask inserts a task and returns the full created row, including the
// server-assigned id and created_at.
func (s *Store) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	var t model.Task
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO tasks (title, notes, status, priority, energy_requirement,
			time_estimate, project_id, role_id, parent_task_id,
			start_date, deadline, remind_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING *`,
		in.Title, in.Notes, in.Status, in.Priority, in.EnergyRequirement,
		in.TimeEstimate, in.ProjectID, in.RoleID, in.ParentTaskID,
		in.StartDate, in.Deadline, in.RemindDate,
	).StructScan(&t)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &t, nil
}

// GetTask returns the enriched task, or nil (not an error) when the id does
// not exist.
func (s *Store) GetTask(ctx context.Context, id int64) (*model.TaskFull, error) {
	var t model.TaskFull
	err := s.db.GetContext(ctx, &t, `SELECT * FROM v_tasks_full WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return &t, nil
}

// UpdateTask applies the non-nil fields of in. A call with zero updatable
// fields returns the current row unchanged; a missing id is ErrTaskNotFound.
func (s *Store) UpdateTask(ctx context.Context, in UpdateTaskInput) (*model.Task, error) {
	sets, args := buildTaskSets(in)
	if len(sets) == 0 {
		var t model.Task
		err := s.db.GetContext(ctx, &t, `SELECT * FROM tasks WHERE id = ?`, in.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get task %d: %w", in.ID, err)
		}
		return &t, nil
	}

	args = append(args, in.ID)
	var t model.Task
	err := s.db.QueryRowxContext(ctx,
		`UPDATE tasks SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING *`,
		args...,
	).StructScan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task %d: %w", in.ID, err)
	}
	return &t, nil
}

func buildTaskSets(in UpdateTaskInput) (sets []string, args []any) {
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Notes != nil {
		add("notes", *in.Notes)
	}
	if in.Status != nil {
		add("status", *in.Status)
	}
	if in.Priority != nil {
		add("priority", *in.Priority)
	}
	if in.EnergyRequirement != nil {
		add("energy_requirement", *in.EnergyRequirement)
	}
	if in.TimeEstimate != nil {
		add("time_estimate", *in.TimeEstimate)
	}
	if in.ProjectID != nil {
		add("project_id", *in.ProjectID)
	}
	if in.RoleID != nil {
		add("role_id", *in.RoleID)
	}
	if in.ParentTaskID != nil {
		add("parent_task_id", *in.ParentTaskID)
	}
	if in.StartDate != nil {
		add("start_date", *in.StartDate)
	}
	if in.Deadline != nil {
		add("deadline", *in.Deadline)
	}
	if in.RemindDate != nil {
		add("remind_date", *in.RemindDate)
	}
	return sets, args
}

// DeleteTask removes a task. Children keep existing with parent_task_id
// nulled by the FK action; they are never cascade-deleted.
func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ListTasks returns enriched tasks matching the filter. Terminal statuses
// are excluded unless IncludeCompleted is set or an explicit status filter
// asks for them.
func (s *Store) ListTasks(ctx context.Context, f TaskFilter) ([]model.TaskFull, error) {
	var conditions []string
	var args []any

	if f.Status != nil {
		conditions = append(conditions, "f.status = ?")
		args = append(args, *f.Status)
	} else if !f.IncludeCompleted {
		conditions = append(conditions, "f.status NOT IN ('done','cancelled')")
	}
	if f.RoleID != nil {
		conditions = append(conditions, "f.role_id = ?")
		args = append(args, *f.RoleID)
	}
	if f.ProjectID != nil {
		conditions = append(conditions, "f.project_id = ?")
		args = append(args, *f.ProjectID)
	}

	query := `SELECT * FROM v_tasks_full f`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += taskOrder

	tasks := []model.TaskFull{}
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// SearchTasks matches a case-insensitive substring against title and notes.
// Done/cancelled tasks are excluded unless includeCompleted is set.
func (s *Store) SearchTasks(ctx context.Context, query string, includeCompleted bool) ([]model.TaskFull, error) {
	sqlQuery := `
		SELECT * FROM v_tasks_full f
		WHERE (lower(f.title) LIKE '%' || lower(?) || '%'
			OR lower(COALESCE(f.notes, '')) LIKE '%' || lower(?) || '%')`
	if !includeCompleted {
		sqlQuery += ` AND f.status NOT IN ('done','cancelled')`
	}
	sqlQuery += taskOrder

	tasks := []model.TaskFull{}
	if err := s.db.SelectContext(ctx, &tasks, sqlQuery, query, query); err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// GetSubtasks returns the direct children of a task.
func (s *Store) GetSubtasks(ctx context.Context, parentID int64) ([]model.TaskFull, error) {
	tasks := []model.TaskFull{}
	err := s.db.SelectContext(ctx, &tasks,
		`SELECT * FROM v_tasks_full f WHERE f.parent_task_id = ?`+taskOrder, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subtasks of %d: %w", parentID, err)
	}
	return tasks, nil
}

// GetTasksByRole returns the open (non-terminal) tasks of a role.
func (s *Store) GetTasksByRole(ctx context.Context, roleID int64) ([]model.TaskFull, error) {
	tasks := []model.TaskFull{}
	err := s.db.SelectContext(ctx, &tasks,
		`SELECT * FROM v_tasks_full f
		WHERE f.role_id = ? AND f.status NOT IN ('done','cancelled')`+taskOrder, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for role %d: %w", roleID, err)
	}
	return tasks, nil
}

// GetTodayTasks returns the actionable-today tasks, overdue first.
func (s *Store) GetTodayTasks(ctx context.Context) ([]model.TodayTask, error) {
	tasks := []model.TodayTask{}
	err := s.db.SelectContext(ctx, &tasks, `SELECT * FROM v_today_tasks f`+taskOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to get today tasks: %w", err)
	}
	return tasks, nil
}

// GetOverdueTasks returns overdue tasks, most overdue first.
func (s *Store) GetOverdueTasks(ctx context.Context) ([]model.OverdueTask, error) {
	tasks := []model.OverdueTask{}
	err := s.db.SelectContext(ctx, &tasks,
		`SELECT * FROM v_overdue_tasks f ORDER BY f.days_overdue DESC, f.priority DESC, f.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue tasks: %w", err)
	}
	return tasks, nil
}

// GetStaleTasks returns stale tasks, most stale first.
func (s *Store) GetStaleTasks(ctx context.Context) ([]model.StaleTask, error) {
	tasks := []model.StaleTask{}
	err := s.db.SelectContext(ctx, &tasks,
		`SELECT * FROM v_stale_tasks f ORDER BY f.days_stale DESC, f.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale tasks: %w", err)
	}
	return tasks, nil
}
