// Package memory keeps the board in process memory. It backs local runs and tests
// when no Postgres is configured.
package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard-microservice/tasks/core"
)

type DB struct {
	log *slog.Logger

	mu sync.Mutex
	st *state
}

var _ core.DB = (*DB)(nil)

type Option func(*DB)

// WithClock sets the clock used for created/updated stamps the store owns.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.st.now = now
	}
}

func New(log *slog.Logger, opts ...Option) *DB {
	db := &DB{
		log: log,
		st:  newState(func() time.Time { return time.Now().UTC() }),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *DB) Ping(context.Context) error {
	return nil
}

// WithinTx serialises transactions on one mutex and restores a snapshot when fn fails.
func (db *DB) WithinTx(ctx context.Context, fn func(tx core.Store) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := db.st.clone()
	if err := fn(db.st); err != nil {
		db.st = snapshot
		db.log.Debug("memory transaction rolled back", "error", err)
		return err
	}
	return nil
}

func (db *DB) CreateProject(ctx context.Context, p core.Project) (core.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.CreateProject(ctx, p)
}

func (db *DB) ListProjects(ctx context.Context, userID string) ([]core.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.ListProjects(ctx, userID)
}

func (db *DB) GetProject(ctx context.Context, projectID uuid.UUID, userID string) (core.Project, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.GetProject(ctx, projectID, userID)
}

func (db *DB) AddMember(ctx context.Context, m core.Member) (core.Member, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.AddMember(ctx, m)
}

func (db *DB) ListMembers(ctx context.Context, projectID uuid.UUID) ([]core.Member, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.ListMembers(ctx, projectID)
}

func (db *DB) CreateInvitation(ctx context.Context, inv core.Invitation) (core.Invitation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.CreateInvitation(ctx, inv)
}

func (db *DB) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.CreateTask(ctx, t)
}

func (db *DB) GetTask(ctx context.Context, id uuid.UUID) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.GetTask(ctx, id)
}

func (db *DB) LockTask(ctx context.Context, id uuid.UUID) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.LockTask(ctx, id)
}

func (db *DB) ListTasks(ctx context.Context, f core.ListTasksFilter) ([]core.TaskSummary, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.ListTasks(ctx, f)
}

func (db *DB) ListChildren(ctx context.Context, parentID uuid.UUID) ([]core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.ListChildren(ctx, parentID)
}

func (db *DB) MaxPosition(ctx context.Context, projectID uuid.UUID, priority core.Priority) (*float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.MaxPosition(ctx, projectID, priority)
}

func (db *DB) ColumnPositions(ctx context.Context, projectID uuid.UUID, status core.TaskStatus) ([]core.TaskPosition, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.ColumnPositions(ctx, projectID, status)
}

func (db *DB) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.UpdateTask(ctx, t)
}

func (db *DB) TransitionTask(ctx context.Context, id uuid.UUID, tr core.Transition) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.TransitionTask(ctx, id, tr)
}

func (db *DB) SetDerivedStatus(ctx context.Context, id uuid.UUID, status core.TaskStatus) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.SetDerivedStatus(ctx, id, status)
}

func (db *DB) SetPosition(ctx context.Context, id uuid.UUID, position float64) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.SetPosition(ctx, id, position)
}

func (db *DB) SetAssignee(ctx context.Context, id uuid.UUID, userID *string) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.SetAssignee(ctx, id, userID)
}

func (db *DB) DeleteTask(ctx context.Context, id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.DeleteTask(ctx, id)
}

func (db *DB) AddDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.AddDependency(ctx, taskID, blockedByID)
}

func (db *DB) RemoveDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.RemoveDependency(ctx, taskID, blockedByID)
}

func (db *DB) ListBlockedBy(ctx context.Context, taskID uuid.UUID) ([]core.TaskRef, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.ListBlockedBy(ctx, taskID)
}

func (db *DB) ListBlocking(ctx context.Context, taskID uuid.UUID) ([]core.TaskRef, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.ListBlocking(ctx, taskID)
}
