package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transition is a status and timer change applied to one task in a single store write.
// Accrual follows Timer.Transition evaluated at Now.
type Transition struct {
	Status *TaskStatus
	Timer  TimerStatus
	Now    time.Time
}

type DB interface {
	Store
	Ping(ctx context.Context) error
	// WithinTx runs fn in one store transaction; a returned error rolls it back.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

type Store interface {
	// projects
	CreateProject(ctx context.Context, p Project) (Project, error)
	ListProjects(ctx context.Context, userID string) ([]Project, error)
	GetProject(ctx context.Context, projectID uuid.UUID, userID string) (Project, error)
	AddMember(ctx context.Context, m Member) (Member, error)
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]Member, error)
	CreateInvitation(ctx context.Context, inv Invitation) (Invitation, error)

	// tasks
	CreateTask(ctx context.Context, t Task) (Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (Task, error)
	LockTask(ctx context.Context, id uuid.UUID) (Task, error)
	ListTasks(ctx context.Context, f ListTasksFilter) ([]TaskSummary, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]Task, error)
	MaxPosition(ctx context.Context, projectID uuid.UUID, priority Priority) (*float64, error)
	ColumnPositions(ctx context.Context, projectID uuid.UUID, status TaskStatus) ([]TaskPosition, error)
	UpdateTask(ctx context.Context, t Task) (Task, error)
	TransitionTask(ctx context.Context, id uuid.UUID, tr Transition) (Task, error)
	SetDerivedStatus(ctx context.Context, id uuid.UUID, status TaskStatus) (Task, error)
	SetPosition(ctx context.Context, id uuid.UUID, position float64) (Task, error)
	SetAssignee(ctx context.Context, id uuid.UUID, userID *string) (Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// dependencies
	AddDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error
	RemoveDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error
	ListBlockedBy(ctx context.Context, taskID uuid.UUID) ([]TaskRef, error)
	ListBlocking(ctx context.Context, taskID uuid.UUID) ([]TaskRef, error)
}
