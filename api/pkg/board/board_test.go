package board

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"taskboard-microservice/tasks/core"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func row(t core.Task) core.TaskSummary {
	return core.TaskSummary{Task: t}
}

func newTask(title string, typ core.TaskType, parent *uuid.UUID, pos float64) core.Task {
	return core.Task{
		ID:        uuid.New(),
		ParentID:  parent,
		Type:      typ,
		Title:     title,
		Status:    core.StatusToDo,
		Priority:  core.PriorityMedium,
		Position:  pos,
		CreatedAt: t0,
	}
}

func TestStatusChanged_DerivesParentAndRunsTimer(t *testing.T) {
	t.Parallel()

	epic := newTask("epic", core.TypeBig, nil, 2000)
	a := newTask("a", core.TypeSmall, &epic.ID, 0)
	b := newTask("b", core.TypeSmall, &epic.ID, 0)
	bd := New([]core.TaskSummary{row(epic), row(a), row(b)})

	if _, err := bd.Apply(StatusChanged{ID: a.ID, Status: core.StatusInProgress, At: t0}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got, _ := bd.Task(epic.ID); got.Status != core.StatusInProgress {
		t.Fatalf("expected epic In Progress, got %v", got.Status)
	}

	if _, err := bd.Apply(StatusChanged{ID: a.ID, Status: core.StatusDone, At: t0.Add(45 * time.Second)}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	got, _ := bd.Task(a.ID)
	if got.TotalTimeSpent != 45 || got.Timer.Status != core.TimerIdle {
		t.Fatalf("expected 45s committed and idle timer, got %d %v", got.TotalTimeSpent, got.Timer.Status)
	}

	if _, err := bd.Apply(StatusChanged{ID: b.ID, Status: core.StatusDone, At: t0.Add(time.Minute)}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got, _ := bd.Task(epic.ID); got.Status != core.StatusDone {
		t.Fatalf("expected epic Done, got %v", got.Status)
	}
}

func TestApply_RollbackRestoresTouchedTasks(t *testing.T) {
	t.Parallel()

	epic := newTask("epic", core.TypeBig, nil, 2000)
	a := newTask("a", core.TypeSmall, &epic.ID, 0)
	bd := New([]core.TaskSummary{row(epic), row(a)})

	rollback, err := bd.Apply(StatusChanged{ID: a.ID, Status: core.StatusDone, At: t0})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	rollback()

	if got, _ := bd.Task(a.ID); got.Status != core.StatusToDo {
		t.Fatalf("expected child restored to To Do, got %v", got.Status)
	}
	if got, _ := bd.Task(epic.ID); got.Status != core.StatusToDo {
		t.Fatalf("expected epic restored to To Do, got %v", got.Status)
	}
}

func TestMoved_CascadesStatusToSubtasks(t *testing.T) {
	t.Parallel()

	epic := newTask("epic", core.TypeBig, nil, 2000)
	a := newTask("a", core.TypeSmall, &epic.ID, 0)
	bd := New([]core.TaskSummary{row(epic), row(a)})

	done := core.StatusDone
	if _, err := bd.Apply(Moved{ID: epic.ID, Position: 2500, Status: &done, At: t0}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	got, _ := bd.Task(epic.ID)
	if got.Status != core.StatusDone || got.Position != 2500 {
		t.Fatalf("unexpected epic: %v at %v", got.Status, got.Position)
	}
	if child, _ := bd.Task(a.ID); child.Status != core.StatusDone {
		t.Fatalf("expected subtask Done, got %v", child.Status)
	}
}

func TestTimerEvents_BreakNotCounted(t *testing.T) {
	t.Parallel()

	task := newTask("t", core.TypeSmall, nil, 2000)
	bd := New([]core.TaskSummary{row(task)})

	events := []Event{
		TimerStarted{ID: task.ID, Mode: core.TimerWorking, At: t0},
		TimerStarted{ID: task.ID, Mode: core.TimerBreak, At: t0.Add(10 * time.Second)},
		TimerStopped{ID: task.ID, At: t0.Add(5 * time.Minute)},
	}
	for _, e := range events {
		if _, err := bd.Apply(e); err != nil {
			t.Fatalf("Apply returned error: %v", err)
		}
	}

	if got, _ := bd.Task(task.ID); got.TotalTimeSpent != 10 {
		t.Fatalf("expected 10s of working time, got %d", got.TotalTimeSpent)
	}
}

func TestDeleted_RemovesSubtasksAndResyncsParent(t *testing.T) {
	t.Parallel()

	epic := newTask("epic", core.TypeBig, nil, 2000)
	a := newTask("a", core.TypeSmall, &epic.ID, 0)
	a.Status = core.StatusDone
	b := newTask("b", core.TypeSmall, &epic.ID, 0)
	epic.Status = core.StatusInProgress
	bd := New([]core.TaskSummary{row(epic), row(a), row(b)})

	if _, err := bd.Apply(Deleted{ID: b.ID}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if got, _ := bd.Task(epic.ID); got.Status != core.StatusDone {
		t.Fatalf("expected epic Done, got %v", got.Status)
	}

	if _, err := bd.Apply(Deleted{ID: epic.ID}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if bd.Len() != 0 {
		t.Fatalf("expected empty board, got %d tasks", bd.Len())
	}
}

func TestApply_UnknownTask(t *testing.T) {
	t.Parallel()

	bd := New(nil)
	if _, err := bd.Apply(TimerStopped{ID: uuid.New(), At: t0}); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
}

func TestColumns_OrderAndRollups(t *testing.T) {
	t.Parallel()

	low := newTask("low", core.TypeSmall, nil, 1000)
	high := newTask("high", core.TypeSmall, nil, 3000)
	epic := newTask("epic", core.TypeBig, nil, 2000)
	epic.Status = core.StatusInProgress
	child := newTask("child", core.TypeSmall, &epic.ID, 0)
	child.Status = core.StatusDone
	child.TotalTimeSpent = 120

	bd := New([]core.TaskSummary{row(low), row(high), row(epic), row(child)})
	cols := bd.Columns()

	if len(cols) != len(ColumnOrder) {
		t.Fatalf("expected %d columns, got %d", len(ColumnOrder), len(cols))
	}
	todo := cols[0]
	if todo.Status != core.StatusToDo || len(todo.Cards) != 2 {
		t.Fatalf("unexpected To Do column: %+v", todo)
	}
	if todo.Cards[0].ID != high.ID || todo.Cards[1].ID != low.ID {
		t.Fatalf("expected highest position first")
	}

	inProgress := cols[1]
	if len(inProgress.Cards) != 1 {
		t.Fatalf("expected the epic alone In Progress, got %d cards", len(inProgress.Cards))
	}
	card := inProgress.Cards[0]
	if card.SubtaskCount != 1 || card.SubtasksDone != 1 || card.TotalTimeSpent != 120 {
		t.Fatalf("unexpected rollup: %+v", card.TaskSummary)
	}
}

func TestReconcile_ReplacesState(t *testing.T) {
	t.Parallel()

	a := newTask("a", core.TypeSmall, nil, 1)
	bd := New([]core.TaskSummary{row(a)})

	if _, err := bd.Apply(StatusChanged{ID: a.ID, Status: core.StatusInProgress, At: t0}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	server := a
	server.Status = core.StatusBlocked
	bd.Reconcile([]core.TaskSummary{row(server)})

	if got, _ := bd.Task(a.ID); got.Status != core.StatusBlocked {
		t.Fatalf("expected server state to win, got %v", got.Status)
	}
}

func TestApply_RollbackAfterReconcileKeepsServerRows(t *testing.T) {
	t.Parallel()

	a := newTask("a", core.TypeSmall, nil, 1)
	bd := New([]core.TaskSummary{row(a)})

	rollback, err := bd.Apply(StatusChanged{ID: a.ID, Status: core.StatusDone, At: t0})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	server := a
	server.Status = core.StatusDone
	bd.Reconcile([]core.TaskSummary{row(server)})
	rollback()

	if got, _ := bd.Task(a.ID); got.Status != core.StatusDone {
		t.Fatalf("expected reconciled Done to survive a stale rollback, got %v", got.Status)
	}
}
