// Package model defines the AIDA entities and their canonical enum sets.
//
// The enum values here are the single source of truth: the argument schemas
// in internal/schema and the CHECK constraints in internal/store are both
// generated from these lists, so the validator can never accept a value the
// database would reject.
package model

// TaskStatus is the lifecycle status of a task.
type TaskStatus string

const (
	TaskStatusCaptured  TaskStatus = "captured"
	TaskStatusClarified TaskStatus = "clarified"
	TaskStatusReady     TaskStatus = "ready"
	TaskStatusPlanned   TaskStatus = "planned"
	TaskStatusDone      TaskStatus = "done"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// TaskStatuses lists all valid task statuses in lifecycle order.
func TaskStatuses() []string {
	return []string{
		string(TaskStatusCaptured),
		string(TaskStatusClarified),
		string(TaskStatusReady),
		string(TaskStatusPlanned),
		string(TaskStatusDone),
		string(TaskStatusCancelled),
	}
}

// IsTerminal reports whether the status excludes the task from the
// today/overdue/stale views.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusDone || s == TaskStatusCancelled
}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	return contains(TaskStatuses(), string(s))
}

// ProjectStatus is the status of a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// ProjectStatuses lists all valid project statuses.
func ProjectStatuses() []string {
	return []string{
		string(ProjectStatusActive),
		string(ProjectStatusOnHold),
		string(ProjectStatusCompleted),
		string(ProjectStatusCancelled),
	}
}

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	return contains(ProjectStatuses(), string(s))
}

// RoleStatus is the status of a role.
type RoleStatus string

const (
	RoleStatusActive     RoleStatus = "active"
	RoleStatusInactive   RoleStatus = "inactive"
	RoleStatusHistorical RoleStatus = "historical"
)

// RoleStatuses lists all valid role statuses.
func RoleStatuses() []string {
	return []string{
		string(RoleStatusActive),
		string(RoleStatusInactive),
		string(RoleStatusHistorical),
	}
}

// Valid reports whether s is a known role status.
func (s RoleStatus) Valid() bool {
	return contains(RoleStatuses(), string(s))
}

// RoleType classifies the life/work context a role belongs to.
type RoleType string

const (
	RoleTypeMeta         RoleType = "meta"
	RoleTypeWork         RoleType = "work"
	RoleTypePersonal     RoleType = "personal"
	RoleTypePrivate      RoleType = "private"
	RoleTypeCivic        RoleType = "civic"
	RoleTypeSideBusiness RoleType = "side_business"
	RoleTypeHobby        RoleType = "hobby"
)

// RoleTypes lists all valid role types.
func RoleTypes() []string {
	return []string{
		string(RoleTypeMeta),
		string(RoleTypeWork),
		string(RoleTypePersonal),
		string(RoleTypePrivate),
		string(RoleTypeCivic),
		string(RoleTypeSideBusiness),
		string(RoleTypeHobby),
	}
}

// Valid reports whether t is a known role type.
func (t RoleType) Valid() bool {
	return contains(RoleTypes(), string(t))
}

// EntryType classifies a journal entry.
type EntryType string

const (
	EntryTypeCheckin    EntryType = "checkin"
	EntryTypeReflection EntryType = "reflection"
	EntryTypeTask       EntryType = "task"
	EntryTypeEvent      EntryType = "event"
	EntryTypeNote       EntryType = "note"
	EntryTypeIdea       EntryType = "idea"
)

// EntryTypes lists all valid journal entry types.
func EntryTypes() []string {
	return []string{
		string(EntryTypeCheckin),
		string(EntryTypeReflection),
		string(EntryTypeTask),
		string(EntryTypeEvent),
		string(EntryTypeNote),
		string(EntryTypeIdea),
	}
}

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	return contains(EntryTypes(), string(t))
}

// EnergyLevel is the energy a task demands.
type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

// EnergyLevels lists all valid energy levels.
func EnergyLevels() []string {
	return []string{
		string(EnergyLow),
		string(EnergyMedium),
		string(EnergyHigh),
	}
}

// Valid reports whether e is a known energy level.
func (e EnergyLevel) Valid() bool {
	return contains(EnergyLevels(), string(e))
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
