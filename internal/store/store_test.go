package store

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedRole(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	role, err := s.CreateRole(context.Background(), CreateRoleInput{
		Name:   name,
		Type:   "personal",
		Status: "active",
	})
	require.NoError(t, err)
	return role.ID
}

func seedProject(t *testing.T, s *Store, name string, roleID int64) int64 {
	t.Helper()
	project, err := s.CreateProject(context.Background(), CreateProjectInput{
		Name:        name,
		RoleID:      roleID,
		Status:      "active",
		Description: "test project",
	})
	require.NoError(t, err)
	return project.ID
}

func seedTask(t *testing.T, s *Store, title string, roleID int64) int64 {
	t.Helper()
	task, err := s.CreateTask(context.Background(), CreateTaskInput{
		Title:  title,
		Status: "captured",
		RoleID: roleID,
	})
	require.NoError(t, err)
	return task.ID
}

// backdateTask shifts a task's created_at for staleness tests.
func backdateTask(t *testing.T, s *Store, taskID int64, days int) {
	t.Helper()
	_, err := s.db.Exec(
		`UPDATE tasks SET created_at = datetime('now','localtime','-`+strconv.Itoa(days)+` days') WHERE id = ?`,
		taskID)
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func int64Ptr(n int64) *int64 { return &n }

func f64Ptr(f float64) *float64 { return &f }

func TestOpenCreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "aida.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aida.db")

	s1, err := Open(path)
	require.NoError(t, err)
	roleID := seedRole(t, s1, "Hälsa")
	require.NoError(t, s1.Close())

	// Reopening applies the full schema script against existing objects.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	role, err := s2.GetRole(context.Background(), roleID)
	require.NoError(t, err)
	require.NotNil(t, role)
	require.Equal(t, "Hälsa", role.Name)
}

func TestForeignKeysEnforced(t *testing.T) {
	s := newTestStore(t)

	// A task pointing at a missing role must be rejected.
	_, err := s.CreateTask(context.Background(), CreateTaskInput{
		Title:  "Orphan",
		Status: "captured",
		RoleID: 9999,
	})
	require.Error(t, err)
}

func TestDatabaseFilesTrio(t *testing.T) {
	files := DatabaseFiles("/tmp/aida.db")
	require.Equal(t, []string{"/tmp/aida.db", "/tmp/aida.db-wal", "/tmp/aida.db-shm"}, files)
}

func TestDeleteDatabaseRemovesSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aida.db")

	s, err := Open(path)
	require.NoError(t, err)
	seedRole(t, s, "Arbete")
	require.NoError(t, s.Close())

	require.NoError(t, DeleteDatabase(path))
	for _, p := range DatabaseFiles(path) {
		_, statErr := os.Stat(p)
		require.True(t, os.IsNotExist(statErr), "expected %s to be gone", p)
	}

	// Deleting again is a no-op.
	require.NoError(t, DeleteDatabase(path))
}

func TestResetDatabaseDropsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aida.db")

	s, err := Open(path)
	require.NoError(t, err)
	roleID := seedRole(t, s, "Förälder")
	require.NoError(t, s.Close())

	s2, err := ResetDatabase(path)
	require.NoError(t, err)
	defer s2.Close()

	role, err := s2.GetRole(context.Background(), roleID)
	require.NoError(t, err)
	require.Nil(t, role)
}
