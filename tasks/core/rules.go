package core

// DeriveParentStatus computes a parent's status from its direct children.
// The second result is false when there are no children and the parent keeps its own status.
func DeriveParentStatus(children []TaskStatus) (TaskStatus, bool) {
	if len(children) == 0 {
		return StatusToDo, false
	}

	done, started := 0, 0
	for _, st := range children {
		switch st {
		case StatusDone:
			done++
			started++
		case StatusInProgress, StatusBlocked:
			started++
		}
	}

	switch {
	case done == len(children):
		return StatusDone, true
	case started > 0:
		return StatusInProgress, true
	default:
		return StatusToDo, true
	}
}

// TimerModeFor is the timer state implied by moving a task to status.
func TimerModeFor(status TaskStatus) TimerStatus {
	switch status {
	case StatusInProgress:
		return TimerWorking
	case StatusBreak:
		return TimerBreak
	default:
		return TimerIdle
	}
}

// blockable lists the statuses a new dependency forces to Blocked.
func blockable(status TaskStatus) bool {
	return status == StatusToDo || status == StatusInProgress
}
