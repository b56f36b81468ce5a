// Package board keeps a client-side copy of a project's tasks. Optimistic events run the
// same status, timer and cascade rules as the service, so a reconcile with server rows
// normally changes nothing.
package board

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"taskboard-microservice/tasks/core"
)

var ErrUnknownTask = errors.New("unknown task")

type Board struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]core.Task
	gen   uint64 // bumped by Reconcile
}

func New(rows []core.TaskSummary) *Board {
	b := &Board{}
	b.Reconcile(rows)
	return b
}

// Reconcile replaces the local state with authoritative rows.
func (b *Board) Reconcile(rows []core.TaskSummary) {
	tasks := make(map[uuid.UUID]core.Task, len(rows))
	for _, r := range rows {
		tasks[r.ID] = r.Task
	}

	b.mu.Lock()
	b.tasks = tasks
	b.gen++
	b.mu.Unlock()
}

func (b *Board) Task(id uuid.UUID) (core.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	t, ok := b.tasks[id]
	return t, ok
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tasks)
}

// Apply runs e against the cache. The returned rollback restores every task e touched;
// call it when the matching server request fails. After a Reconcile the server rows are
// authoritative and an older rollback does nothing.
func (b *Board) Apply(e Event) (rollback func(), err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx := &change{tasks: b.tasks, prev: make(map[uuid.UUID]*core.Task)}
	if err := e.apply(tx); err != nil {
		tx.undo()
		return func() {}, err
	}

	gen := b.gen
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen != gen {
			return
		}
		tx.undo()
	}, nil
}

// change records the prior value of every task an event writes.
type change struct {
	tasks map[uuid.UUID]core.Task
	prev  map[uuid.UUID]*core.Task
}

func (c *change) get(id uuid.UUID) (core.Task, error) {
	t, ok := c.tasks[id]
	if !ok {
		return core.Task{}, ErrUnknownTask
	}
	return t, nil
}

func (c *change) remember(id uuid.UUID) {
	if _, seen := c.prev[id]; seen {
		return
	}
	if t, ok := c.tasks[id]; ok {
		c.prev[id] = &t
		return
	}
	c.prev[id] = nil
}

func (c *change) put(t core.Task) {
	c.remember(t.ID)
	c.tasks[t.ID] = t
}

func (c *change) remove(id uuid.UUID) {
	c.remember(id)
	delete(c.tasks, id)
}

func (c *change) undo() {
	for id, t := range c.prev {
		if t == nil {
			delete(c.tasks, id)
			continue
		}
		c.tasks[id] = *t
	}
}

func (c *change) children(parentID uuid.UUID) []core.Task {
	out := make([]core.Task, 0)
	for _, t := range c.tasks {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (c *change) syncParent(parentID uuid.UUID) {
	parent, ok := c.tasks[parentID]
	if !ok {
		return
	}

	kids := c.children(parentID)
	statuses := make([]core.TaskStatus, 0, len(kids))
	for _, k := range kids {
		statuses = append(statuses, k.Status)
	}

	derived, changed := core.DeriveParentStatus(statuses)
	if !changed || derived == parent.Status {
		return
	}
	parent.Status = derived
	c.put(parent)
}
