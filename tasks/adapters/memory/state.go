package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"taskboard-microservice/tasks/core"
)

type edge struct {
	taskID      uuid.UUID
	blockedByID uuid.UUID
}

// state holds the tables. Its methods assume the caller holds DB.mu.
type state struct {
	now func() time.Time

	projects    map[uuid.UUID]core.Project
	members     map[uuid.UUID]map[string]core.Member
	invitations map[uuid.UUID]core.Invitation
	tasks       map[uuid.UUID]core.Task
	deps        map[edge]struct{}
}

func newState(now func() time.Time) *state {
	return &state{
		now:         now,
		projects:    make(map[uuid.UUID]core.Project),
		members:     make(map[uuid.UUID]map[string]core.Member),
		invitations: make(map[uuid.UUID]core.Invitation),
		tasks:       make(map[uuid.UUID]core.Task),
		deps:        make(map[edge]struct{}),
	}
}

func (s *state) clone() *state {
	out := newState(s.now)
	for k, v := range s.projects {
		out.projects[k] = v
	}
	for k, m := range s.members {
		cp := make(map[string]core.Member, len(m))
		for u, v := range m {
			cp[u] = v
		}
		out.members[k] = cp
	}
	for k, v := range s.invitations {
		out.invitations[k] = v
	}
	for k, v := range s.tasks {
		out.tasks[k] = v
	}
	for k := range s.deps {
		out.deps[k] = struct{}{}
	}
	return out
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.ParentID != nil {
		v := *t.ParentID
		out.ParentID = &v
	}
	if t.Deadline != nil {
		v := *t.Deadline
		out.Deadline = &v
	}
	if t.AssigneeID != nil {
		v := *t.AssigneeID
		out.AssigneeID = &v
	}
	if t.Timer.StartedAt != nil {
		v := *t.Timer.StartedAt
		out.Timer.StartedAt = &v
	}
	return out
}

// Projects

func (s *state) CreateProject(_ context.Context, p core.Project) (core.Project, error) {
	if _, ok := s.projects[p.ID]; ok {
		return core.Project{}, core.ErrProjectInvalidArgs
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	p.Role = ""
	s.projects[p.ID] = p
	return p, nil
}

func (s *state) ListProjects(_ context.Context, userID string) ([]core.Project, error) {
	out := make([]core.Project, 0)
	for id, p := range s.projects {
		m, ok := s.members[id][userID]
		if !ok {
			continue
		}
		p.Role = m.Role
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *state) GetProject(_ context.Context, projectID uuid.UUID, userID string) (core.Project, error) {
	p, ok := s.projects[projectID]
	if !ok {
		return core.Project{}, core.ErrProjectNotFound
	}
	m, ok := s.members[projectID][userID]
	if !ok {
		return core.Project{}, core.ErrProjectNotFound
	}
	p.Role = m.Role
	return p, nil
}

func (s *state) AddMember(_ context.Context, m core.Member) (core.Member, error) {
	if _, ok := s.projects[m.ProjectID]; !ok {
		return core.Member{}, core.ErrProjectNotFound
	}
	if s.members[m.ProjectID] == nil {
		s.members[m.ProjectID] = make(map[string]core.Member)
	}
	if _, ok := s.members[m.ProjectID][m.UserID]; ok {
		return core.Member{}, core.ErrMemberAlreadyExists
	}
	m.JoinedAt = s.now()
	s.members[m.ProjectID][m.UserID] = m
	return m, nil
}

func (s *state) ListMembers(_ context.Context, projectID uuid.UUID) ([]core.Member, error) {
	out := make([]core.Member, 0, len(s.members[projectID]))
	for _, m := range s.members[projectID] {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (s *state) CreateInvitation(_ context.Context, inv core.Invitation) (core.Invitation, error) {
	if _, ok := s.projects[inv.ProjectID]; !ok {
		return core.Invitation{}, core.ErrProjectNotFound
	}
	for _, cur := range s.invitations {
		if cur.Token == inv.Token {
			return core.Invitation{}, core.ErrInvitationAlreadyExists
		}
	}
	s.invitations[inv.ID] = inv
	return inv, nil
}

// Tasks

func (s *state) CreateTask(_ context.Context, t core.Task) (core.Task, error) {
	if _, ok := s.projects[t.ProjectID]; !ok {
		return core.Task{}, core.ErrProjectNotFound
	}
	if t.ParentID != nil {
		if _, ok := s.tasks[*t.ParentID]; !ok {
			return core.Task{}, core.ErrTaskNotFound
		}
	}
	if _, ok := s.tasks[t.ID]; ok {
		return core.Task{}, core.ErrTaskInvalidArgs
	}
	s.tasks[t.ID] = cloneTask(t)
	return cloneTask(t), nil
}

func (s *state) GetTask(_ context.Context, id uuid.UUID) (core.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

// LockTask is GetTask: DB.mu already serialises every transaction.
func (s *state) LockTask(ctx context.Context, id uuid.UUID) (core.Task, error) {
	return s.GetTask(ctx, id)
}

func (s *state) ListTasks(_ context.Context, f core.ListTasksFilter) ([]core.TaskSummary, error) {
	out := make([]core.TaskSummary, 0)
	for _, t := range s.tasks {
		if t.ProjectID != f.ProjectID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.TopLevelOnly && t.ParentID != nil {
			continue
		}
		if f.ParentID != nil && (t.ParentID == nil || *t.ParentID != *f.ParentID) {
			continue
		}
		out = append(out, s.summary(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position > out[j].Position
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *state) summary(t core.Task) core.TaskSummary {
	sum := core.TaskSummary{Task: cloneTask(t)}
	var childTime int64
	for _, c := range s.tasks {
		if c.ParentID == nil || *c.ParentID != t.ID {
			continue
		}
		sum.SubtaskCount++
		if c.Status == core.StatusDone {
			sum.SubtasksDone++
		}
		childTime += c.TotalTimeSpent
	}
	if t.Type == core.TypeBig {
		sum.TotalTimeSpent = childTime
	}
	return sum
}

func (s *state) ListChildren(_ context.Context, parentID uuid.UUID) ([]core.Task, error) {
	out := make([]core.Task, 0)
	for _, t := range s.tasks {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *state) MaxPosition(_ context.Context, projectID uuid.UUID, priority core.Priority) (*float64, error) {
	var top *float64
	for _, t := range s.tasks {
		if t.ProjectID != projectID || t.Priority != priority {
			continue
		}
		if top == nil || t.Position > *top {
			v := t.Position
			top = &v
		}
	}
	return top, nil
}

func (s *state) ColumnPositions(_ context.Context, projectID uuid.UUID, status core.TaskStatus) ([]core.TaskPosition, error) {
	out := make([]core.TaskPosition, 0)
	for _, t := range s.tasks {
		if t.ProjectID == projectID && t.Status == status && t.ParentID == nil {
			out = append(out, core.TaskPosition{ID: t.ID, Position: t.Position})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position > out[j].Position
		}
		return s.tasks[out[i].ID].CreatedAt.After(s.tasks[out[j].ID].CreatedAt)
	})
	return out, nil
}

func (s *state) UpdateTask(_ context.Context, t core.Task) (core.Task, error) {
	cur, ok := s.tasks[t.ID]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.Priority = t.Priority
	cur.Deadline = t.Deadline
	cur.UpdatedAt = s.now()
	s.tasks[t.ID] = cloneTask(cur)
	return cloneTask(cur), nil
}

func (s *state) TransitionTask(_ context.Context, id uuid.UUID, tr core.Transition) (core.Task, error) {
	cur, ok := s.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	next := tr.Apply(cloneTask(cur))
	s.tasks[id] = next
	return cloneTask(next), nil
}

func (s *state) SetDerivedStatus(_ context.Context, id uuid.UUID, status core.TaskStatus) (core.Task, error) {
	return s.mutate(id, func(t *core.Task) { t.Status = status })
}

func (s *state) SetPosition(_ context.Context, id uuid.UUID, position float64) (core.Task, error) {
	return s.mutate(id, func(t *core.Task) { t.Position = position })
}

func (s *state) SetAssignee(_ context.Context, id uuid.UUID, userID *string) (core.Task, error) {
	return s.mutate(id, func(t *core.Task) {
		t.AssigneeID = nil
		if userID != nil {
			v := *userID
			t.AssigneeID = &v
		}
	})
}

func (s *state) mutate(id uuid.UUID, fn func(t *core.Task)) (core.Task, error) {
	cur, ok := s.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	cur = cloneTask(cur)
	fn(&cur)
	cur.UpdatedAt = s.now()
	s.tasks[id] = cur
	return cloneTask(cur), nil
}

func (s *state) DeleteTask(_ context.Context, id uuid.UUID) error {
	if _, ok := s.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}

	doomed := map[uuid.UUID]struct{}{id: {}}
	for cid, t := range s.tasks {
		if t.ParentID != nil && *t.ParentID == id {
			doomed[cid] = struct{}{}
		}
	}
	for tid := range doomed {
		delete(s.tasks, tid)
	}
	for e := range s.deps {
		_, a := doomed[e.taskID]
		_, b := doomed[e.blockedByID]
		if a || b {
			delete(s.deps, e)
		}
	}
	return nil
}

// Dependencies

func (s *state) AddDependency(_ context.Context, taskID, blockedByID uuid.UUID) error {
	if taskID == blockedByID {
		return core.ErrTaskInvalidArgs
	}
	if _, ok := s.tasks[taskID]; !ok {
		return core.ErrTaskNotFound
	}
	if _, ok := s.tasks[blockedByID]; !ok {
		return core.ErrTaskNotFound
	}
	s.deps[edge{taskID: taskID, blockedByID: blockedByID}] = struct{}{}
	return nil
}

func (s *state) RemoveDependency(_ context.Context, taskID, blockedByID uuid.UUID) error {
	delete(s.deps, edge{taskID: taskID, blockedByID: blockedByID})
	return nil
}

func (s *state) ListBlockedBy(_ context.Context, taskID uuid.UUID) ([]core.TaskRef, error) {
	return s.refs(func(e edge) (uuid.UUID, bool) {
		return e.blockedByID, e.taskID == taskID
	}), nil
}

func (s *state) ListBlocking(_ context.Context, taskID uuid.UUID) ([]core.TaskRef, error) {
	return s.refs(func(e edge) (uuid.UUID, bool) {
		return e.taskID, e.blockedByID == taskID
	}), nil
}

func (s *state) refs(pick func(e edge) (uuid.UUID, bool)) []core.TaskRef {
	out := make([]core.TaskRef, 0)
	for e := range s.deps {
		id, ok := pick(e)
		if !ok {
			continue
		}
		t := s.tasks[id]
		out = append(out, core.TaskRef{ID: t.ID, Title: t.Title, Status: t.Status})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}
