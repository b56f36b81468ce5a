package board

import (
	"time"

	"github.com/google/uuid"

	"taskboard-microservice/tasks/core"
)

type Event interface {
	apply(c *change) error
}

type StatusChanged struct {
	ID     uuid.UUID
	Status core.TaskStatus
	At     time.Time
}

func (e StatusChanged) apply(c *change) error {
	t, err := c.get(e.ID)
	if err != nil {
		return err
	}
	if !e.Status.Valid() {
		return core.ErrTaskInvalidArgs
	}

	t = statusTransition(e.Status, e.At).Apply(t)
	c.put(t)
	if t.ParentID != nil {
		c.syncParent(*t.ParentID)
	}
	return nil
}

type TimerStarted struct {
	ID   uuid.UUID
	Mode core.TimerStatus
	At   time.Time
}

func (e TimerStarted) apply(c *change) error {
	if e.Mode != core.TimerWorking && e.Mode != core.TimerBreak {
		return core.ErrTaskInvalidArgs
	}
	t, err := c.get(e.ID)
	if err != nil {
		return err
	}
	c.put(core.Transition{Timer: e.Mode, Now: e.At}.Apply(t))
	return nil
}

type TimerStopped struct {
	ID uuid.UUID
	At time.Time
}

func (e TimerStopped) apply(c *change) error {
	t, err := c.get(e.ID)
	if err != nil {
		return err
	}
	c.put(core.Transition{Timer: core.TimerIdle, Now: e.At}.Apply(t))
	return nil
}

// Moved is a drop on the board. Status, when set, cascades to the task's subtasks.
type Moved struct {
	ID       uuid.UUID
	Position float64
	Status   *core.TaskStatus
	At       time.Time
}

func (e Moved) apply(c *change) error {
	t, err := c.get(e.ID)
	if err != nil {
		return err
	}

	if e.Status != nil {
		if !e.Status.Valid() {
			return core.ErrTaskInvalidArgs
		}
		tr := statusTransition(*e.Status, e.At)
		for _, child := range c.children(e.ID) {
			c.put(tr.Apply(child))
		}
		t = tr.Apply(t)
	}

	t.Position = e.Position
	c.put(t)

	if e.Status != nil && t.ParentID != nil {
		c.syncParent(*t.ParentID)
	}
	return nil
}

type Created struct {
	Task core.Task
}

func (e Created) apply(c *change) error {
	if e.Task.ID == uuid.Nil {
		return core.ErrTaskInvalidArgs
	}
	c.put(e.Task)
	if e.Task.ParentID != nil {
		c.syncParent(*e.Task.ParentID)
	}
	return nil
}

type Deleted struct {
	ID uuid.UUID
}

func (e Deleted) apply(c *change) error {
	t, err := c.get(e.ID)
	if err != nil {
		return err
	}
	for _, child := range c.children(e.ID) {
		c.remove(child.ID)
	}
	c.remove(e.ID)
	if t.ParentID != nil {
		c.syncParent(*t.ParentID)
	}
	return nil
}

func statusTransition(status core.TaskStatus, at time.Time) core.Transition {
	st := status
	return core.Transition{Status: &st, Timer: core.TimerModeFor(status), Now: at}
}
