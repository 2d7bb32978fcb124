package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateTaskDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")

	task, err := s.CreateTask(ctx, CreateTaskInput{
		Title:  "Boka tandläkare",
		Status: "captured",
		RoleID: roleID,
	})
	require.NoError(t, err)
	require.NotZero(t, task.ID)
	require.Equal(t, "captured", task.Status)
	require.Equal(t, 0, task.Priority)
	require.NotEmpty(t, task.CreatedAt)
	require.Nil(t, task.ProjectID)
	require.Nil(t, task.Deadline)
}

func TestGetTaskMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)

	task, err := s.GetTask(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, task)
}

func TestGetTaskEnrichment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Arbete")
	projectID := seedProject(t, s, "Kvartalsrapport", roleID)
	parentID := seedTask(t, s, "Skriva rapport", roleID)

	child, err := s.CreateTask(ctx, CreateTaskInput{
		Title:        "Samla siffror",
		Status:       "ready",
		RoleID:       roleID,
		ProjectID:    &projectID,
		ParentTaskID: &parentID,
	})
	require.NoError(t, err)

	full, err := s.GetTask(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, full)
	require.Equal(t, "Arbete", full.RoleName)
	require.NotNil(t, full.ProjectName)
	require.Equal(t, "Kvartalsrapport", *full.ProjectName)
	require.NotNil(t, full.ParentTitle)
	require.Equal(t, "Skriva rapport", *full.ParentTitle)
}

func TestUpdateTaskPartial(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")
	taskID := seedTask(t, s, "Springa 5 km", roleID)

	updated, err := s.UpdateTask(ctx, UpdateTaskInput{
		ID:       taskID,
		Status:   strPtr("ready"),
		Priority: intPtr(2),
	})
	require.NoError(t, err)
	require.Equal(t, "ready", updated.Status)
	require.Equal(t, 2, updated.Priority)
	require.Equal(t, "Springa 5 km", updated.Title)
}

func TestUpdateTaskZeroFieldsReturnsCurrentRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")
	taskID := seedTask(t, s, "Meditera", roleID)

	task, err := s.UpdateTask(ctx, UpdateTaskInput{ID: taskID})
	require.NoError(t, err)
	require.Equal(t, "Meditera", task.Title)
}

func TestUpdateTaskMissingID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpdateTask(context.Background(), UpdateTaskInput{
		ID:     999,
		Status: strPtr("done"),
	})
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = s.UpdateTask(context.Background(), UpdateTaskInput{ID: 999})
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")
	taskID := seedTask(t, s, "Städa", roleID)

	require.NoError(t, s.DeleteTask(ctx, taskID))
	require.ErrorIs(t, s.DeleteTask(ctx, taskID), ErrTaskNotFound)
}

func TestDeleteParentNullsChildren(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Arbete")
	parentID := seedTask(t, s, "Flytta kontoret", roleID)

	child, err := s.CreateTask(ctx, CreateTaskInput{
		Title:        "Packa lådor",
		Status:       "captured",
		RoleID:       roleID,
		ParentTaskID: &parentID,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteTask(ctx, parentID))

	got, err := s.GetTask(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Nil(t, got.ParentTaskID)
	require.Nil(t, got.ParentTitle)
}

func TestListTasksExcludesTerminalByDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")

	openID := seedTask(t, s, "Öppen", roleID)
	doneID := seedTask(t, s, "Klar", roleID)
	_, err := s.UpdateTask(ctx, UpdateTaskInput{ID: doneID, Status: strPtr("done")})
	require.NoError(t, err)

	tasks, err := s.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, openID, tasks[0].ID)

	all, err := s.ListTasks(ctx, TaskFilter{IncludeCompleted: true})
	require.NoError(t, err)
	require.Len(t, all, 2)

	// An explicit status filter wins over the default exclusion.
	done, err := s.ListTasks(ctx, TaskFilter{Status: strPtr("done")})
	require.NoError(t, err)
	require.Len(t, done, 1)
	require.Equal(t, doneID, done[0].ID)
}

func TestListTasksOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Arbete")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	nextWeek := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	noDeadline, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Ingen deadline", Status: "ready", RoleID: roleID, Priority: 3,
	})
	require.NoError(t, err)
	dueNextWeek, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Nästa vecka", Status: "ready", RoleID: roleID, Priority: 3, Deadline: &nextWeek,
	})
	require.NoError(t, err)
	overdue, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Försenad", Status: "ready", RoleID: roleID, Priority: 0, Deadline: &yesterday,
	})
	require.NoError(t, err)
	dueTomorrow, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Imorgon", Status: "ready", RoleID: roleID, Priority: 1, Deadline: &tomorrow,
	})
	require.NoError(t, err)

	tasks, err := s.ListTasks(ctx, TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	// Overdue first despite lowest priority, then by priority with deadline
	// as tie-break, missing deadlines last.
	require.Equal(t, overdue.ID, tasks[0].ID)
	require.Equal(t, dueNextWeek.ID, tasks[1].ID)
	require.Equal(t, noDeadline.ID, tasks[2].ID)
	require.Equal(t, dueTomorrow.ID, tasks[3].ID)
}

func TestSearchTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")

	_, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Boka Tandläkare", Status: "captured", RoleID: roleID,
	})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, CreateTaskInput{
		Title:  "Ringa kliniken",
		Notes:  strPtr("angående tandläkartid"),
		Status: "captured",
		RoleID: roleID,
	})
	require.NoError(t, err)
	doneID := seedTask(t, s, "Tandläkarbesök klart", roleID)
	_, err = s.UpdateTask(ctx, UpdateTaskInput{ID: doneID, Status: strPtr("done")})
	require.NoError(t, err)

	// Case-insensitive, matches title and notes, skips done.
	tasks, err := s.SearchTasks(ctx, "tandläkar", false)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	withDone, err := s.SearchTasks(ctx, "tandläkar", true)
	require.NoError(t, err)
	require.Len(t, withDone, 3)

	none, err := s.SearchTasks(ctx, "naglar", false)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestGetSubtasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Arbete")
	parentID := seedTask(t, s, "Projektstart", roleID)

	for _, title := range []string{"Första", "Andra"} {
		_, err := s.CreateTask(ctx, CreateTaskInput{
			Title: title, Status: "captured", RoleID: roleID, ParentTaskID: &parentID,
		})
		require.NoError(t, err)
	}

	subtasks, err := s.GetSubtasks(ctx, parentID)
	require.NoError(t, err)
	require.Len(t, subtasks, 2)
}

func TestGetTasksByRoleExcludesTerminal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")
	otherRole := seedRole(t, s, "Arbete")

	seedTask(t, s, "Öppen", roleID)
	seedTask(t, s, "Annan roll", otherRole)
	cancelledID := seedTask(t, s, "Avbruten", roleID)
	_, err := s.UpdateTask(ctx, UpdateTaskInput{ID: cancelledID, Status: strPtr("cancelled")})
	require.NoError(t, err)

	tasks, err := s.GetTasksByRole(ctx, roleID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Öppen", tasks[0].Title)
}

func TestGetTodayTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	inThree := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	farOut := time.Now().AddDate(0, 0, 30).Format("2006-01-02")

	started, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Påbörjad", Status: "ready", RoleID: roleID, StartDate: &yesterday,
	})
	require.NoError(t, err)
	overdue, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Försenad", Status: "ready", RoleID: roleID, Deadline: &yesterday,
	})
	require.NoError(t, err)
	upcoming, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Snar deadline", Status: "ready", RoleID: roleID, Deadline: &inThree,
	})
	require.NoError(t, err)
	reminder, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Påminnelse idag", Status: "ready", RoleID: roleID, RemindDate: &today,
	})
	require.NoError(t, err)

	// Outside today's scope: far deadline, future start, done task.
	_, err = s.CreateTask(ctx, CreateTaskInput{
		Title: "Långt fram", Status: "ready", RoleID: roleID, Deadline: &farOut,
	})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, CreateTaskInput{
		Title: "Startar om tre dagar", Status: "ready", RoleID: roleID, StartDate: &inThree,
	})
	require.NoError(t, err)
	doneID := seedTask(t, s, "Redan klar", roleID)
	_, err = s.UpdateTask(ctx, UpdateTaskInput{
		ID: doneID, Status: strPtr("done"), Deadline: &yesterday,
	})
	require.NoError(t, err)

	tasks, err := s.GetTodayTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 4)

	ids := make(map[int64]bool, len(tasks))
	for _, task := range tasks {
		ids[task.ID] = true
		if task.ID == overdue.ID {
			require.True(t, task.IsOverdue)
		} else {
			require.False(t, task.IsOverdue)
		}
	}
	require.True(t, ids[started.ID])
	require.True(t, ids[overdue.ID])
	require.True(t, ids[upcoming.ID])
	require.True(t, ids[reminder.ID])

	// Overdue sorts first.
	require.Equal(t, overdue.ID, tasks[0].ID)
}

func TestGetOverdueTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Arbete")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	lastWeek := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	today := time.Now().Format("2006-01-02")

	slightly, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Lite sen", Status: "ready", RoleID: roleID, Deadline: &yesterday,
	})
	require.NoError(t, err)
	very, err := s.CreateTask(ctx, CreateTaskInput{
		Title: "Mycket sen", Status: "ready", RoleID: roleID, Deadline: &lastWeek,
	})
	require.NoError(t, err)

	// Due today is not overdue.
	_, err = s.CreateTask(ctx, CreateTaskInput{
		Title: "Idag", Status: "ready", RoleID: roleID, Deadline: &today,
	})
	require.NoError(t, err)

	tasks, err := s.GetOverdueTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, very.ID, tasks[0].ID)
	require.Equal(t, slightly.ID, tasks[1].ID)
	require.Greater(t, tasks[0].DaysOverdue, tasks[1].DaysOverdue)
	require.Greater(t, tasks[1].DaysOverdue, 0.0)
}

func TestGetStaleTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	roleID := seedRole(t, s, "Hälsa")

	staleCaptured := seedTask(t, s, "Gammal infångad", roleID)
	backdateTask(t, s, staleCaptured, StaleCapturedDays+1)

	freshCaptured := seedTask(t, s, "Ny infångad", roleID)
	backdateTask(t, s, freshCaptured, StaleCapturedDays-5)

	staleReady := seedTask(t, s, "Gammal redo", roleID)
	_, err := s.UpdateTask(ctx, UpdateTaskInput{ID: staleReady, Status: strPtr("ready")})
	require.NoError(t, err)
	backdateTask(t, s, staleReady, StaleReadyDays+1)

	// Planned tasks never go stale regardless of age.
	planned := seedTask(t, s, "Planerad", roleID)
	_, err = s.UpdateTask(ctx, UpdateTaskInput{ID: planned, Status: strPtr("planned")})
	require.NoError(t, err)
	backdateTask(t, s, planned, StaleCapturedDays*2)

	tasks, err := s.GetStaleTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// Most stale first.
	require.Equal(t, staleCaptured, tasks[0].ID)
	require.Equal(t, staleReady, tasks[1].ID)
	require.Greater(t, tasks[0].DaysStale, float64(StaleCapturedDays))
}
