package core

import taskcore "taskboard-microservice/tasks/core"

// The gateway speaks the board service's model; these aliases keep handlers free of
// the service package path.
type (
	Task        = taskcore.Task
	TaskSummary = taskcore.TaskSummary
	TaskDetails = taskcore.TaskDetails
	TaskStatus  = taskcore.TaskStatus
	Priority    = taskcore.Priority
	TaskType    = taskcore.TaskType
	TimerStatus = taskcore.TimerStatus
	Project     = taskcore.Project
	Member      = taskcore.Member
	Invitation  = taskcore.Invitation

	CreateProjectInput = taskcore.CreateProjectInput
	CreateTaskInput    = taskcore.CreateTaskInput
	TaskPatch          = taskcore.TaskPatch
	RepositionInput    = taskcore.RepositionInput
	ListTasksFilter    = taskcore.ListTasksFilter
)
