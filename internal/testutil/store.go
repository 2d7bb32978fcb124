// Package testutil provides shared fixtures for store-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/aidahq/aida/internal/store"
)

// NewStore opens an in-memory database with the full schema applied and
// closes it when the test finishes.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// SeedRole creates a role to hang tasks and projects on.
func SeedRole(t *testing.T, st *store.Store, name string) int64 {
	t.Helper()
	role, err := st.CreateRole(context.Background(), store.CreateRoleInput{
		Name:   name,
		Type:   "personal",
		Status: "active",
	})
	if err != nil {
		t.Fatalf("failed to seed role %q: %v", name, err)
	}
	return role.ID
}

// SeedProject creates an active project under the given role.
func SeedProject(t *testing.T, st *store.Store, name string, roleID int64) int64 {
	t.Helper()
	project, err := st.CreateProject(context.Background(), store.CreateProjectInput{
		Name:        name,
		RoleID:      roleID,
		Status:      "active",
		Description: "seeded for testing",
	})
	if err != nil {
		t.Fatalf("failed to seed project %q: %v", name, err)
	}
	return project.ID
}

// SeedTask creates a captured task under the given role.
func SeedTask(t *testing.T, st *store.Store, title string, roleID int64) int64 {
	t.Helper()
	task, err := st.CreateTask(context.Background(), store.CreateTaskInput{
		Title:  title,
		Status: "captured",
		RoleID: roleID,
	})
	if err != nil {
		t.Fatalf("failed to seed task %q: %v", title, err)
	}
	return task.ID
}
