package core

import "time"

// ElapsedSeconds floors the millisecond difference to whole seconds. Clock skew yields 0.
func ElapsedSeconds(startedAt, now time.Time) int64 {
	ms := now.Sub(startedAt).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms / 1000
}

func (t Timer) Running() bool {
	return t.StartedAt != nil && t.Status != TimerIdle
}

// Transition moves the timer to mode `to` at `now` and reports the seconds to add to the
// task total. A session already running in the same mode is left as is.
func (t Timer) Transition(to TimerStatus, now time.Time) (Timer, int64) {
	if t.Running() && t.Status == to {
		return t, 0
	}

	var accrued int64
	if t.Running() && t.Status == TimerWorking {
		accrued = ElapsedSeconds(*t.StartedAt, now)
	}

	if to == TimerIdle {
		return Timer{Status: TimerIdle}, accrued
	}

	started := now
	return Timer{Status: to, StartedAt: &started}, accrued
}

// Apply runs a Transition against a task value. Stores without a combined statement use it.
func (tr Transition) Apply(t Task) Task {
	timer, accrued := t.Timer.Transition(tr.Timer, tr.Now)
	t.Timer = timer
	t.TotalTimeSpent += accrued
	if tr.Status != nil {
		t.Status = *tr.Status
	}
	t.UpdatedAt = tr.Now
	return t
}
