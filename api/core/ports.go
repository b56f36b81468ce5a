package core

import (
	"context"

	"github.com/google/uuid"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Board interface {
	Pinger

	// projects
	CreateProject(ctx context.Context, in CreateProjectInput) (Project, error)
	ListProjects(ctx context.Context, userID string) ([]Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID, userID string) (Project, error)
	ListMembers(ctx context.Context, projectID uuid.UUID, userID string) ([]Member, error)
	InviteUser(ctx context.Context, projectID uuid.UUID, userID, email, role string) (Invitation, error)

	// tasks
	CreateTask(ctx context.Context, in CreateTaskInput) (Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (TaskDetails, error)
	ListTasks(ctx context.Context, f ListTasksFilter) ([]TaskSummary, error)
	PatchTask(ctx context.Context, id uuid.UUID, p TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status TaskStatus) (Task, error)
	Reposition(ctx context.Context, id uuid.UUID, in RepositionInput) (Task, error)
	AssignTask(ctx context.Context, id uuid.UUID, assigneeID *string) (Task, error)

	// timer
	StartTimer(ctx context.Context, id uuid.UUID, mode TimerStatus) (Task, error)
	StopTimer(ctx context.Context, id uuid.UUID) (Task, error)

	// dependencies
	AddDependency(ctx context.Context, taskID, blockedByID uuid.UUID) (Task, error)
	RemoveDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error
}

type Deps struct {
	Board Board
}
