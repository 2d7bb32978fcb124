package schema

import (
	"sort"

	"github.com/aidahq/aida/internal/model"
)

// Registry maps module name → function name → argument spec. The dispatcher
// resolves every call against this table before any database connection is
// touched.
type Registry map[string]map[string]*FuncSpec

// Modules returns all module names, sorted.
func (r Registry) Modules() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Functions returns all function names in a module, sorted.
func (r Registry) Functions(module string) []string {
	funcs, ok := r[module]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a (module, function) pair.
func (r Registry) Lookup(module, function string) (*FuncSpec, bool) {
	funcs, ok := r[module]
	if !ok {
		return nil, false
	}
	spec, ok := funcs[function]
	return spec, ok
}

func none() *FuncSpec {
	return &FuncSpec{Mode: ModeNone}
}

func byID() *FuncSpec {
	return &FuncSpec{Mode: ModePositional, Scalar: &ScalarSchema{Kind: ScalarID}}
}

func byOptionalDate() *FuncSpec {
	return &FuncSpec{Mode: ModePositional, Scalar: &ScalarSchema{Kind: ScalarDate}, Optional: true}
}

func object(fields map[string]*FieldDef) *FuncSpec {
	return &FuncSpec{Mode: ModeObject, Object: &ObjectSchema{Fields: fields}}
}

func optionalObject(fields map[string]*FieldDef) *FuncSpec {
	return &FuncSpec{Mode: ModeObject, Object: &ObjectSchema{Fields: fields}, Optional: true}
}

// taskWriteFields returns the task field definitions shared by create and
// update. Create marks title and role_id required and applies defaults;
// update requires only id.
func taskWriteFields(create bool) map[string]*FieldDef {
	fields := map[string]*FieldDef{
		"title":              {Type: FieldTypeString, Required: create, NonEmpty: true},
		"notes":              {Type: FieldTypeString},
		"status":             {Type: FieldTypeEnum, Enum: model.TaskStatuses()},
		"priority":           {Type: FieldTypeInt, Min: floatPtr(0), Max: floatPtr(3)},
		"energy_requirement": {Type: FieldTypeEnum, Enum: model.EnergyLevels()},
		"time_estimate":      {Type: FieldTypeInt, Min: floatPtr(1)},
		"project_id":         {Type: FieldTypeInt, Min: floatPtr(1)},
		"role_id":            {Type: FieldTypeInt, Required: create, Min: floatPtr(1)},
		"parent_task_id":     {Type: FieldTypeInt, Min: floatPtr(1)},
		"start_date":         {Type: FieldTypeDate},
		"deadline":           {Type: FieldTypeDate},
		"remind_date":        {Type: FieldTypeDate},
	}
	if create {
		fields["status"].Default = string(model.TaskStatusCaptured)
		fields["priority"].Default = int64(0)
	} else {
		fields["id"] = &FieldDef{Type: FieldTypeInt, Required: true, Min: floatPtr(1)}
	}
	return fields
}

func roleWriteFields(create bool) map[string]*FieldDef {
	fields := map[string]*FieldDef{
		"name":             {Type: FieldTypeString, Required: create, NonEmpty: true},
		"type":             {Type: FieldTypeEnum, Required: create, Enum: model.RoleTypes()},
		"description":      {Type: FieldTypeString},
		"responsibilities": {Type: FieldTypeStringArray},
		"status":           {Type: FieldTypeEnum, Enum: model.RoleStatuses()},
		"balance_target":   {Type: FieldTypeFraction, Min: floatPtr(0), Max: floatPtr(1)},
	}
	if create {
		fields["status"].Default = string(model.RoleStatusActive)
	} else {
		fields["id"] = &FieldDef{Type: FieldTypeInt, Required: true, Min: floatPtr(1)}
	}
	return fields
}

func projectWriteFields(create bool) map[string]*FieldDef {
	fields := map[string]*FieldDef{
		"name":            {Type: FieldTypeString, Required: create, NonEmpty: true},
		"role_id":         {Type: FieldTypeInt, Required: create, Min: floatPtr(1)},
		"status":          {Type: FieldTypeEnum, Enum: model.ProjectStatuses()},
		"description":     {Type: FieldTypeString, Required: create, NonEmpty: true},
		"finish_criteria": {Type: FieldTypeCriteriaArray},
	}
	if create {
		fields["status"].Default = string(model.ProjectStatusActive)
	} else {
		fields["id"] = &FieldDef{Type: FieldTypeInt, Required: true, Min: floatPtr(1)}
	}
	return fields
}

// NewRegistry builds the canonical registry of callable operations.
//
// Note the journal module has create and read operations only: entries are
// immutable by contract, so no update or delete is registered.
func NewRegistry() Registry {
	return Registry{
		"tasks": {
			"createTask":      object(taskWriteFields(true)),
			"getTask":         byID(),
			"updateTask":      object(taskWriteFields(false)),
			"deleteTask":      byID(),
			"listTasks": optionalObject(map[string]*FieldDef{
				"status":            {Type: FieldTypeEnum, Enum: model.TaskStatuses()},
				"role_id":           {Type: FieldTypeInt, Min: floatPtr(1)},
				"project_id":        {Type: FieldTypeInt, Min: floatPtr(1)},
				"include_completed": {Type: FieldTypeBool, Default: false},
			}),
			"searchTasks": object(map[string]*FieldDef{
				"query":             {Type: FieldTypeString, Required: true, NonEmpty: true},
				"include_completed": {Type: FieldTypeBool, Default: false},
			}),
			"getSubtasks":     byID(),
			"getTasksByRole":  byID(),
			"getTodayTasks":   none(),
			"getOverdueTasks": none(),
			"getStaleTasks":   none(),
		},
		"roles": {
			"createRole": object(roleWriteFields(true)),
			"getRole":    byID(),
			"updateRole": object(roleWriteFields(false)),
			"deleteRole": byID(),
			"listRoles": optionalObject(map[string]*FieldDef{
				"status": {Type: FieldTypeEnum, Enum: model.RoleStatuses()},
			}),
			"getRolesSummary": none(),
		},
		"projects": {
			"createProject": object(projectWriteFields(true)),
			"getProject":    byID(),
			"updateProject": object(projectWriteFields(false)),
			"deleteProject": byID(),
			"listProjects": optionalObject(map[string]*FieldDef{
				"status":  {Type: FieldTypeEnum, Enum: model.ProjectStatuses()},
				"role_id": {Type: FieldTypeInt, Min: floatPtr(1)},
			}),
			"getProjectTasks":   byID(),
			"getPausedProjects": none(),
		},
		"journal": {
			"createEntry": object(map[string]*FieldDef{
				"entry_type":         {Type: FieldTypeEnum, Required: true, Enum: model.EntryTypes()},
				"content":            {Type: FieldTypeString, Required: true, NonEmpty: true},
				"timestamp":          {Type: FieldTypeDatetime},
				"related_task_id":    {Type: FieldTypeInt, Min: floatPtr(1)},
				"related_project_id": {Type: FieldTypeInt, Min: floatPtr(1)},
				"related_role_id":    {Type: FieldTypeInt, Min: floatPtr(1)},
			}),
			"getEntry":            byID(),
			"getEntriesByTask":    byID(),
			"getEntriesByProject": byID(),
			"getEntriesByRole":    byID(),
			"getEntriesByType": object(map[string]*FieldDef{
				"entry_type": {Type: FieldTypeEnum, Required: true, Enum: model.EntryTypes()},
				"limit":      {Type: FieldTypeInt, Min: floatPtr(1)},
			}),
			"getEntriesByDateRange": object(map[string]*FieldDef{
				"start_date": {Type: FieldTypeDate, Required: true},
				"end_date":   {Type: FieldTypeDate, Required: true},
			}),
			"getEntriesForDate": byOptionalDate(),
		},
		"todoist": {
			"sync":   none(),
			"status": none(),
		},
	}
}
