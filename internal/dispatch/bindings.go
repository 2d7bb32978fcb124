package dispatch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aidahq/aida/internal/store"
)

// invoke routes a validated call to its query function. Arguments arrive
// already normalized: positional ids as int64, dates as strings (nil when the
// optional argument was omitted), objects as maps with defaults applied.
func invoke(ctx context.Context, env *Env, module, function string, args []any) (any, error) {
	switch module {
	case "tasks":
		return invokeTasks(ctx, env.Store, function, args)
	case "roles":
		return invokeRoles(ctx, env.Store, function, args)
	case "projects":
		return invokeProjects(ctx, env.Store, function, args)
	case "journal":
		return invokeJournal(ctx, env.Store, function, args)
	case "todoist":
		return invokeTodoist(ctx, env, function)
	}
	return nil, fmt.Errorf("no binding for module %q", module)
}

func invokeTasks(ctx context.Context, st *store.Store, function string, args []any) (any, error) {
	switch function {
	case "createTask":
		var in store.CreateTaskInput
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.CreateTask(ctx, in)
	case "getTask":
		return st.GetTask(ctx, argID(args))
	case "updateTask":
		var in store.UpdateTaskInput
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.UpdateTask(ctx, in)
	case "deleteTask":
		id := argID(args)
		if err := st.DeleteTask(ctx, id); err != nil {
			return nil, err
		}
		return deleted(id), nil
	case "listTasks":
		var f store.TaskFilter
		if err := decodeInto(args[0], &f); err != nil {
			return nil, err
		}
		return st.ListTasks(ctx, f)
	case "searchTasks":
		var in struct {
			Query            string `json:"query"`
			IncludeCompleted bool   `json:"include_completed"`
		}
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.SearchTasks(ctx, in.Query, in.IncludeCompleted)
	case "getSubtasks":
		return st.GetSubtasks(ctx, argID(args))
	case "getTasksByRole":
		return st.GetTasksByRole(ctx, argID(args))
	case "getTodayTasks":
		return st.GetTodayTasks(ctx)
	case "getOverdueTasks":
		return st.GetOverdueTasks(ctx)
	case "getStaleTasks":
		return st.GetStaleTasks(ctx)
	}
	return nil, fmt.Errorf("no binding for tasks.%s", function)
}

func invokeRoles(ctx context.Context, st *store.Store, function string, args []any) (any, error) {
	switch function {
	case "createRole":
		var in store.CreateRoleInput
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.CreateRole(ctx, in)
	case "getRole":
		return st.GetRole(ctx, argID(args))
	case "updateRole":
		var in store.UpdateRoleInput
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.UpdateRole(ctx, in)
	case "deleteRole":
		id := argID(args)
		if err := st.DeleteRole(ctx, id); err != nil {
			return nil, err
		}
		return deleted(id), nil
	case "listRoles":
		var f struct {
			Status *string `json:"status"`
		}
		if err := decodeInto(args[0], &f); err != nil {
			return nil, err
		}
		return st.ListRoles(ctx, f.Status)
	case "getRolesSummary":
		return st.GetRolesSummary(ctx)
	}
	return nil, fmt.Errorf("no binding for roles.%s", function)
}

func invokeProjects(ctx context.Context, st *store.Store, function string, args []any) (any, error) {
	switch function {
	case "createProject":
		var in store.CreateProjectInput
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.CreateProject(ctx, in)
	case "getProject":
		return st.GetProject(ctx, argID(args))
	case "updateProject":
		var in store.UpdateProjectInput
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.UpdateProject(ctx, in)
	case "deleteProject":
		id := argID(args)
		if err := st.DeleteProject(ctx, id); err != nil {
			return nil, err
		}
		return deleted(id), nil
	case "listProjects":
		var f store.ProjectFilter
		if err := decodeInto(args[0], &f); err != nil {
			return nil, err
		}
		return st.ListProjects(ctx, f)
	case "getProjectTasks":
		return st.GetProjectTasks(ctx, argID(args))
	case "getPausedProjects":
		return st.GetPausedProjects(ctx)
	}
	return nil, fmt.Errorf("no binding for projects.%s", function)
}

func invokeJournal(ctx context.Context, st *store.Store, function string, args []any) (any, error) {
	switch function {
	case "createEntry":
		var in store.CreateEntryInput
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.CreateEntry(ctx, in)
	case "getEntry":
		return st.GetEntry(ctx, argID(args))
	case "getEntriesByTask":
		return st.GetEntriesByTask(ctx, argID(args))
	case "getEntriesByProject":
		return st.GetEntriesByProject(ctx, argID(args))
	case "getEntriesByRole":
		return st.GetEntriesByRole(ctx, argID(args))
	case "getEntriesByType":
		var in struct {
			EntryType string `json:"entry_type"`
			Limit     *int64 `json:"limit"`
		}
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.GetEntriesByType(ctx, in.EntryType, in.Limit)
	case "getEntriesByDateRange":
		var in struct {
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		}
		if err := decodeInto(args[0], &in); err != nil {
			return nil, err
		}
		return st.GetEntriesByDateRange(ctx, in.StartDate, in.EndDate)
	case "getEntriesForDate":
		day := ""
		if args[0] != nil {
			day = args[0].(string)
		}
		return st.GetEntriesForDate(ctx, day)
	}
	return nil, fmt.Errorf("no binding for journal.%s", function)
}

func invokeTodoist(ctx context.Context, env *Env, function string) (any, error) {
	switch function {
	case "sync":
		if env.Todoist == nil {
			return nil, &CallError{
				Code:       CodeNotConfigured,
				Message:    "todoist is not configured",
				Suggestion: "Set the Todoist API token in the config file.",
			}
		}
		return env.Todoist.Sync(ctx, env.Store)
	case "status":
		return env.Store.GetSyncStatus(ctx)
	}
	return nil, fmt.Errorf("no binding for todoist.%s", function)
}

// decodeInto moves a normalized argument object into a typed input struct.
// A JSON round-trip keeps the mapping rules in one place: the struct tags.
func decodeInto(normalized any, target any) error {
	data, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode arguments: %w", err)
	}
	return nil
}

func argID(args []any) int64 {
	return args[0].(int64)
}

// deleted is the uniform payload for successful deletions.
func deleted(id int64) map[string]any {
	return map[string]any{"deleted": true, "id": id}
}
