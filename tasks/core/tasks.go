package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateTaskInput struct {
	ProjectID   uuid.UUID
	CreatorID   string
	Title       string
	Description string
	Status      *TaskStatus
	Priority    *Priority
	Type        *TaskType
	ParentID    *uuid.UUID
	Deadline    *time.Time
	AssigneeID  *string
}

type TaskPatch struct {
	Title         *string
	Description   *string
	Priority      *Priority
	Deadline      *time.Time
	ClearDeadline bool
	Status        *TaskStatus
}

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Deadline == nil && !p.ClearDeadline && p.Status == nil
}

func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (Task, error) {
	title := strings.TrimSpace(in.Title)
	creator := strings.TrimSpace(in.CreatorID)
	if in.ProjectID == uuid.Nil || title == "" || creator == "" {
		return Task{}, ErrTaskInvalidArgs
	}

	status, priority, typ := StatusToDo, PriorityMedium, TypeSmall
	if in.Status != nil {
		status = *in.Status
	}
	if in.Priority != nil {
		priority = *in.Priority
	}
	if in.Type != nil {
		typ = *in.Type
	}
	if !status.Valid() || !priority.Valid() || !typ.Valid() {
		return Task{}, ErrTaskInvalidArgs
	}
	if in.ParentID != nil && typ != TypeSmall {
		return Task{}, ErrTaskInvalidArgs
	}

	var out Task
	err := s.db.WithinTx(ctx, func(tx Store) error {
		if _, err := tx.GetProject(ctx, in.ProjectID, creator); err != nil {
			return err
		}

		if in.ParentID != nil {
			parent, err := tx.GetTask(ctx, *in.ParentID)
			if err != nil {
				return err
			}
			if parent.ProjectID != in.ProjectID || parent.Type != TypeBig || parent.ParentID != nil {
				return ErrTaskInvalidArgs
			}
		}

		maxPos, err := tx.MaxPosition(ctx, in.ProjectID, priority)
		if err != nil {
			return err
		}

		now := s.clock()
		t, err := tx.CreateTask(ctx, Task{
			ID:          uuid.New(),
			ProjectID:   in.ProjectID,
			ParentID:    in.ParentID,
			Type:        typ,
			Title:       title,
			Description: strings.TrimSpace(in.Description),
			Status:      StatusToDo,
			Priority:    priority,
			Position:    InitialPosition(priority, maxPos),
			Deadline:    in.Deadline,
			AssigneeID:  normalizeUserID(in.AssigneeID),
			CreatorID:   creator,
			Timer:       Timer{Status: TimerIdle},
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}

		if status != StatusToDo {
			t, err = tx.TransitionTask(ctx, t.ID, s.transitionTo(status))
			if err != nil {
				return err
			}
		}

		if t.ParentID != nil {
			if err := s.syncParent(ctx, tx, *t.ParentID); err != nil {
				return err
			}
		}

		out = t
		return nil
	})
	if err != nil {
		return Task{}, err
	}
	return out, nil
}

func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (TaskDetails, error) {
	if id == uuid.Nil {
		return TaskDetails{}, ErrTaskInvalidArgs
	}

	t, err := s.db.GetTask(ctx, id)
	if err != nil {
		return TaskDetails{}, err
	}
	blockedBy, err := s.db.ListBlockedBy(ctx, id)
	if err != nil {
		return TaskDetails{}, err
	}
	blocking, err := s.db.ListBlocking(ctx, id)
	if err != nil {
		return TaskDetails{}, err
	}

	return TaskDetails{Task: t, BlockedBy: blockedBy, Blocking: blocking}, nil
}

func (s *Service) ListTasks(ctx context.Context, f ListTasksFilter) ([]TaskSummary, error) {
	if f.ProjectID == uuid.Nil {
		return nil, ErrTaskInvalidArgs
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, ErrTaskInvalidArgs
	}
	if f.ParentID != nil && f.TopLevelOnly {
		return nil, ErrTaskInvalidArgs
	}
	return s.db.ListTasks(ctx, f)
}

func (s *Service) PatchTask(ctx context.Context, id uuid.UUID, p TaskPatch) (Task, error) {
	if id == uuid.Nil || p.empty() {
		return Task{}, ErrTaskInvalidArgs
	}
	if p.Deadline != nil && p.ClearDeadline {
		return Task{}, ErrTaskInvalidArgs
	}
	if p.Status != nil && !p.Status.Valid() {
		return Task{}, ErrTaskInvalidArgs
	}

	var out Task
	err := s.db.WithinTx(ctx, func(tx Store) error {
		cur, err := tx.LockTask(ctx, id)
		if err != nil {
			return err
		}

		changed := false
		if p.Title != nil {
			title := strings.TrimSpace(*p.Title)
			if title == "" {
				return ErrTaskInvalidArgs
			}
			cur.Title = title
			changed = true
		}
		if p.Description != nil {
			cur.Description = strings.TrimSpace(*p.Description)
			changed = true
		}
		if p.Priority != nil {
			if !p.Priority.Valid() {
				return ErrTaskInvalidArgs
			}
			cur.Priority = *p.Priority
			changed = true
		}
		if p.Deadline != nil {
			d := *p.Deadline
			cur.Deadline = &d
			changed = true
		}
		if p.ClearDeadline {
			cur.Deadline = nil
			changed = true
		}

		if changed {
			if cur, err = tx.UpdateTask(ctx, cur); err != nil {
				return err
			}
		}

		if p.Status != nil {
			if cur, err = s.applyStatus(ctx, tx, id, *p.Status); err != nil {
				return err
			}
		}

		out = cur
		return nil
	})
	if err != nil {
		return Task{}, err
	}
	return out, nil
}

// DeleteTask removes the task with its subtasks and re-derives the former parent.
func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrTaskInvalidArgs
	}

	return s.db.WithinTx(ctx, func(tx Store) error {
		t, err := tx.GetTask(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteTask(ctx, id); err != nil {
			return err
		}
		if t.ParentID != nil {
			return s.syncParent(ctx, tx, *t.ParentID)
		}
		return nil
	})
}

func (s *Service) AssignTask(ctx context.Context, id uuid.UUID, userID *string) (Task, error) {
	if id == uuid.Nil {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.SetAssignee(ctx, id, normalizeUserID(userID))
}

func normalizeUserID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}
