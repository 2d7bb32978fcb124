package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aidahq/aida/internal/model"
)

// CreateProjectInput is the validated input for CreateProject.
type CreateProjectInput struct {
	Name           string                  `json:"name"`
	RoleID         int64                   `json:"role_id"`
	Status         string                  `json:"status"`
	Description    string                  `json:"description"`
	FinishCriteria []model.FinishCriterion `json:"finish_criteria"`
}

// UpdateProjectInput carries a partial update. FinishCriteria, when supplied,
// replace the stored checklist wholesale: the caller must send the complete
// list every time so concurrent edits never merge silently.
type UpdateProjectInput struct {
	ID             int64                   `json:"id"`
	Name           *string                 `json:"name"`
	RoleID         *int64                  `json:"role_id"`
	Status         *string                 `json:"status"`
	Description    *string                 `json:"description"`
	FinishCriteria []model.FinishCriterion `json:"finish_criteria"`
}

// ProjectFilter narrows ListProjects.
type ProjectFilter struct {
	Status *string `json:"status"`
	RoleID *int64  `json:"role_id"`
}

// projectRow adds the serialized finish_criteria column to the model struct.
type projectRow struct {
	model.Project
	CriteriaJSON string `db:"finish_criteria"`
}

func (r projectRow) toProject() (*model.Project, error) {
	p := r.Project
	if err := decodeCriteria(r.CriteriaJSON, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// projectFullRow is a row of v_projects_full.
type projectFullRow struct {
	model.ProjectFull
	CriteriaJSON string `db:"finish_criteria"`
}

func (r projectFullRow) toProjectFull() (*model.ProjectFull, error) {
	p := r.ProjectFull
	if err := decodeCriteria(r.CriteriaJSON, &p.Project); err != nil {
		return nil, err
	}
	return &p, nil
}

func decodeCriteria(raw string, p *model.Project) error {
	if err := json.Unmarshal([]byte(raw), &p.FinishCriteria); err != nil {
		return fmt.Errorf("failed to decode finish_criteria for project %d: %w", p.ID, err)
	}
	if p.FinishCriteria == nil {
		p.FinishCriteria = []model.FinishCriterion{}
	}
	return nil
}

func marshalCriteria(criteria []model.FinishCriterion) (string, error) {
	if criteria == nil {
		criteria = []model.FinishCriterion{}
	}
	data, err := json.Marshal(criteria)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateProject inserts a project and returns the full created row.
func (s *Store) CreateProject(ctx context.Context, in CreateProjectInput) (*model.Project, error) {
	criteria, err := marshalCriteria(in.FinishCriteria)
	if err != nil {
		return nil, fmt.Errorf("failed to encode finish_criteria: %w", err)
	}

	var row projectRow
	err = s.db.QueryRowxContext(ctx, `
		INSERT INTO projects (name, role_id, status, description, finish_criteria)
		VALUES (?, ?, ?, ?, ?)
		RETURNING *`,
		in.Name, in.RoleID, in.Status, in.Description, criteria,
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return row.toProject()
}

// GetProject returns the enriched project (with role name and recomputed
// progress), or nil when the id does not exist.
func (s *Store) GetProject(ctx context.Context, id int64) (*model.ProjectFull, error) {
	var row projectFullRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM v_projects_full WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return row.toProjectFull()
}

// UpdateProject applies the non-nil fields of in.
func (s *Store) UpdateProject(ctx context.Context, in UpdateProjectInput) (*model.Project, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.RoleID != nil {
		add("role_id", *in.RoleID)
	}
	if in.Status != nil {
		add("status", *in.Status)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.FinishCriteria != nil {
		criteria, err := marshalCriteria(in.FinishCriteria)
		if err != nil {
			return nil, fmt.Errorf("failed to encode finish_criteria: %w", err)
		}
		add("finish_criteria", criteria)
	}

	if len(sets) == 0 {
		var row projectRow
		err := s.db.GetContext(ctx, &row, `SELECT * FROM projects WHERE id = ?`, in.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get project %d: %w", in.ID, err)
		}
		return row.toProject()
	}

	args = append(args, in.ID)
	var row projectRow
	err := s.db.QueryRowxContext(ctx,
		`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING *`,
		args...,
	).StructScan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project %d: %w", in.ID, err)
	}
	return row.toProject()
}

// DeleteProject removes a project. Its tasks survive with project_id nulled
// by the FK action.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// ListProjects returns enriched projects matching the filter, by name.
func (s *Store) ListProjects(ctx context.Context, f ProjectFilter) ([]model.ProjectFull, error) {
	var conditions []string
	var args []any
	if f.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *f.Status)
	}
	if f.RoleID != nil {
		conditions = append(conditions, "role_id = ?")
		args = append(args, *f.RoleID)
	}

	query := `SELECT * FROM v_projects_full`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY name ASC`

	return s.selectProjectsFull(ctx, query, args...)
}

// GetProjectTasks returns the enriched tasks of a project.
func (s *Store) GetProjectTasks(ctx context.Context, projectID int64) ([]model.TaskFull, error) {
	tasks := []model.TaskFull{}
	err := s.db.SelectContext(ctx, &tasks,
		`SELECT * FROM v_tasks_full f WHERE f.project_id = ?`+taskOrder, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for project %d: %w", projectID, err)
	}
	return tasks, nil
}

// GetPausedProjects returns on-hold projects, oldest first, to surface the
// longest-neglected ones.
func (s *Store) GetPausedProjects(ctx context.Context) ([]model.ProjectFull, error) {
	return s.selectProjectsFull(ctx,
		`SELECT * FROM v_projects_full WHERE status = 'on_hold' ORDER BY created_at ASC, id ASC`)
}

func (s *Store) selectProjectsFull(ctx context.Context, query string, args ...any) ([]model.ProjectFull, error) {
	var rows []projectFullRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}

	projects := make([]model.ProjectFull, 0, len(rows))
	for _, row := range rows {
		p, err := row.toProjectFull()
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	return projects, nil
}
