package core_test

import (
	"math"
	"testing"
	"time"

	"taskboard-microservice/tasks/core"
)

func TestDeriveParentStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		children []core.TaskStatus
		want     core.TaskStatus
		changed  bool
	}{
		{name: "no children keeps parent", children: nil, changed: false, want: core.StatusToDo},
		{name: "all done", children: []core.TaskStatus{core.StatusDone, core.StatusDone}, want: core.StatusDone, changed: true},
		{name: "one in progress", children: []core.TaskStatus{core.StatusToDo, core.StatusInProgress}, want: core.StatusInProgress, changed: true},
		{name: "some done", children: []core.TaskStatus{core.StatusDone, core.StatusToDo}, want: core.StatusInProgress, changed: true},
		{name: "blocked counts as started", children: []core.TaskStatus{core.StatusBlocked, core.StatusToDo}, want: core.StatusInProgress, changed: true},
		{name: "nothing started", children: []core.TaskStatus{core.StatusToDo, core.StatusToDo}, want: core.StatusToDo, changed: true},
		{name: "break is not started", children: []core.TaskStatus{core.StatusBreak, core.StatusToDo}, want: core.StatusToDo, changed: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, changed := core.DeriveParentStatus(tt.children)
			if changed != tt.changed {
				t.Fatalf("expected changed=%v, got %v", tt.changed, changed)
			}
			if changed && got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTimerModeFor(t *testing.T) {
	t.Parallel()

	cases := map[core.TaskStatus]core.TimerStatus{
		core.StatusToDo:       core.TimerIdle,
		core.StatusInProgress: core.TimerWorking,
		core.StatusBlocked:    core.TimerIdle,
		core.StatusDone:       core.TimerIdle,
		core.StatusBreak:      core.TimerBreak,
	}
	for status, want := range cases {
		if got := core.TimerModeFor(status); got != want {
			t.Fatalf("status %v: expected timer %v, got %v", status, want, got)
		}
	}
}

func TestTimerTransition_WorkingToIdleAccruesFlooredSeconds(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	timer, accrued := core.Timer{}.Transition(core.TimerWorking, t0)
	if accrued != 0 || timer.StartedAt == nil || !timer.StartedAt.Equal(t0) {
		t.Fatalf("unexpected start: %+v accrued=%d", timer, accrued)
	}

	timer, accrued = timer.Transition(core.TimerIdle, t0.Add(90*time.Second+999*time.Millisecond))
	if accrued != 90 {
		t.Fatalf("expected 90 seconds, got %d", accrued)
	}
	if timer.Status != core.TimerIdle || timer.StartedAt != nil {
		t.Fatalf("expected idle timer without start, got %+v", timer)
	}
}

func TestTimerTransition_BreakTimeNotCounted(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	timer, _ := core.Timer{}.Transition(core.TimerBreak, t0)

	_, accrued := timer.Transition(core.TimerIdle, t0.Add(time.Hour))
	if accrued != 0 {
		t.Fatalf("expected break time to be excluded, got %d", accrued)
	}
}

func TestTimerTransition_WorkingToBreakCommitsWork(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	timer, _ := core.Timer{}.Transition(core.TimerWorking, t0)

	onBreak, accrued := timer.Transition(core.TimerBreak, t0.Add(90*time.Second))
	if accrued != 90 {
		t.Fatalf("expected 90s of work committed, got %d", accrued)
	}
	if onBreak.Status != core.TimerBreak || !onBreak.StartedAt.Equal(t0.Add(90*time.Second)) {
		t.Fatalf("expected break session started at the switch, got %v at %v", onBreak.Status, onBreak.StartedAt)
	}
}

func TestTimerTransition_SameModeKeepsSession(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	timer, _ := core.Timer{}.Transition(core.TimerWorking, t0)

	again, accrued := timer.Transition(core.TimerWorking, t0.Add(time.Minute))
	if accrued != 0 {
		t.Fatalf("expected no accrual, got %d", accrued)
	}
	if !again.StartedAt.Equal(t0) {
		t.Fatalf("expected start to stay %v, got %v", t0, again.StartedAt)
	}
}

func TestElapsedSeconds_ClockSkewClampsToZero(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	if got := core.ElapsedSeconds(t0, t0.Add(-5*time.Second)); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestPositionBetween(t *testing.T) {
	t.Parallel()

	ten, twenty := 10.0, 20.0

	if got, ok := core.PositionBetween(&twenty, &ten); !ok || got != 15 {
		t.Fatalf("expected 15, got %v (%v)", got, ok)
	}
	if got, ok := core.PositionBetween(&twenty, nil); !ok || got != 10 {
		t.Fatalf("expected 10 under the lone neighbour above, got %v (%v)", got, ok)
	}
	if got, ok := core.PositionBetween(nil, &ten); !ok || got != 20 {
		t.Fatalf("expected 20 over the lone neighbour below, got %v (%v)", got, ok)
	}
	if _, ok := core.PositionBetween(nil, nil); ok {
		t.Fatalf("expected no position without neighbours")
	}

	a := 1.0
	b := math.Nextafter(1, 2)
	if _, ok := core.PositionBetween(&b, &a); ok {
		t.Fatalf("expected exhausted gap to be reported")
	}
}

func TestInitialPosition(t *testing.T) {
	t.Parallel()

	if got := core.InitialPosition(core.PriorityHigh, nil); got != 3000 {
		t.Fatalf("expected base weight 3000, got %v", got)
	}
	top := 3000.0
	if got := core.InitialPosition(core.PriorityHigh, &top); got != 3001 {
		t.Fatalf("expected 3001, got %v", got)
	}
}

func TestRespace(t *testing.T) {
	t.Parallel()

	got := core.Respace(100, 3)
	want := []float64{100, 90, 80}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"In Progress", "in_progress", "IN-PROGRESS"} {
		got, err := core.ParseTaskStatus(in)
		if err != nil || got != core.StatusInProgress {
			t.Fatalf("%q: expected In Progress, got %v (%v)", in, got, err)
		}
	}
	if _, err := core.ParseTaskStatus("later"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}
