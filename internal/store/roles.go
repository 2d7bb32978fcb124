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

// CreateRoleInput is the validated input for CreateRole.
type CreateRoleInput struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Description      *string  `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Status           string   `json:"status"`
	BalanceTarget    *float64 `json:"balance_target"`
}

// UpdateRoleInput carries a partial update. Responsibilities, when supplied,
// replace the stored list wholesale.
type UpdateRoleInput struct {
	ID               int64    `json:"id"`
	Name             *string  `json:"name"`
	Type             *string  `json:"type"`
	Description      *string  `json:"description"`
	Responsibilities []string `json:"responsibilities"`
	Status           *string  `json:"status"`
	BalanceTarget    *float64 `json:"balance_target"`
}

// roleRow adds the serialized responsibilities column to the model struct.
type roleRow struct {
	model.Role
	ResponsibilitiesJSON string `db:"responsibilities"`
}

func (r roleRow) toRole() (*model.Role, error) {
	role := r.Role
	if err := json.Unmarshal([]byte(r.ResponsibilitiesJSON), &role.Responsibilities); err != nil {
		return nil, fmt.Errorf("failed to decode responsibilities for role %d: %w", role.ID, err)
	}
	if role.Responsibilities == nil {
		role.Responsibilities = []string{}
	}
	return &role, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CreateRole inserts a role and returns the full created row.
func (s *Store) CreateRole(ctx context.Context, in CreateRoleInput) (*model.Role, error) {
	responsibilities, err := marshalStrings(in.Responsibilities)
	if err != nil {
		return nil, fmt.Errorf("failed to encode responsibilities: %w", err)
	}

	var row roleRow
	err = s.db.QueryRowxContext(ctx, `
		INSERT INTO roles (name, type, description, responsibilities, status, balance_target)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING *`,
		in.Name, in.Type, in.Description, responsibilities, in.Status, in.BalanceTarget,
	).StructScan(&row)
	if err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return row.toRole()
}

// GetRole returns a role, or nil when the id does not exist.
func (s *Store) GetRole(ctx context.Context, id int64) (*model.Role, error) {
	var row roleRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM roles WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role %d: %w", id, err)
	}
	return row.toRole()
}

// UpdateRole applies the non-nil fields of in. The updated_at column is
// bumped by the roles trigger, not here.
func (s *Store) UpdateRole(ctx context.Context, in UpdateRoleInput) (*model.Role, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Type != nil {
		add("type", *in.Type)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Responsibilities != nil {
		responsibilities, err := marshalStrings(in.Responsibilities)
		if err != nil {
			return nil, fmt.Errorf("failed to encode responsibilities: %w", err)
		}
		add("responsibilities", responsibilities)
	}
	if in.Status != nil {
		add("status", *in.Status)
	}
	if in.BalanceTarget != nil {
		add("balance_target", *in.BalanceTarget)
	}

	if len(sets) == 0 {
		role, err := s.GetRole(ctx, in.ID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, ErrRoleNotFound
		}
		return role, nil
	}

	args = append(args, in.ID)
	var row roleRow
	err := s.db.QueryRowxContext(ctx,
		`UPDATE roles SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING *`,
		args...,
	).StructScan(&row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update role %d: %w", in.ID, err)
	}
	return row.toRole()
}

// DeleteRole removes a role. The RESTRICT foreign keys make this fail with a
// constraint error while any task or project still references the role; the
// error is surfaced as-is, the core does not pre-check.
func (s *Store) DeleteRole(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete role %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRoleNotFound
	}
	return nil
}

// ListRoles returns roles, optionally filtered by status, ordered by name.
func (s *Store) ListRoles(ctx context.Context, status *string) ([]model.Role, error) {
	query := `SELECT * FROM roles`
	var args []any
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY name ASC`

	var rows []roleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	roles := make([]model.Role, 0, len(rows))
	for _, row := range rows {
		role, err := row.toRole()
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, nil
}

// GetRolesSummary returns per-role workload counts from v_roles_summary.
func (s *Store) GetRolesSummary(ctx context.Context) ([]model.RoleSummary, error) {
	summaries := []model.RoleSummary{}
	err := s.db.SelectContext(ctx, &summaries,
		`SELECT * FROM v_roles_summary ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles summary: %w", err)
	}
	return summaries, nil
}
