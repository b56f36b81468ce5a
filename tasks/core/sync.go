package core

import (
	"context"

	"github.com/google/uuid"
)

// SetStatus writes the status with its timer side effect and re-derives the parent,
// all in one transaction.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status TaskStatus) (Task, error) {
	if id == uuid.Nil || !status.Valid() {
		return Task{}, ErrTaskInvalidArgs
	}

	var out Task
	err := s.db.WithinTx(ctx, func(tx Store) error {
		t, err := s.applyStatus(ctx, tx, id, status)
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return Task{}, err
	}
	return out, nil
}

func (s *Service) StartTimer(ctx context.Context, id uuid.UUID, mode TimerStatus) (Task, error) {
	if id == uuid.Nil || (mode != TimerWorking && mode != TimerBreak) {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.TransitionTask(ctx, id, Transition{Timer: mode, Now: s.clock()})
}

// StopTimer commits working time. Stopping an idle timer succeeds and changes nothing.
func (s *Service) StopTimer(ctx context.Context, id uuid.UUID) (Task, error) {
	if id == uuid.Nil {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.TransitionTask(ctx, id, Transition{Timer: TimerIdle, Now: s.clock()})
}

// AddDependency records that taskID is blocked by blockedByID. A task in To Do or
// In Progress is moved to Blocked once, at insertion; nothing re-evaluates it later.
func (s *Service) AddDependency(ctx context.Context, taskID, blockedByID uuid.UUID) (Task, error) {
	if taskID == uuid.Nil || blockedByID == uuid.Nil || taskID == blockedByID {
		return Task{}, ErrTaskInvalidArgs
	}

	var out Task
	err := s.db.WithinTx(ctx, func(tx Store) error {
		t, err := tx.LockTask(ctx, taskID)
		if err != nil {
			return err
		}
		blocker, err := tx.GetTask(ctx, blockedByID)
		if err != nil {
			return err
		}
		if blocker.ProjectID != t.ProjectID {
			return ErrTaskInvalidArgs
		}

		if err := tx.AddDependency(ctx, taskID, blockedByID); err != nil {
			return err
		}

		if blockable(t.Status) {
			if t, err = s.applyStatus(ctx, tx, taskID, StatusBlocked); err != nil {
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

// RemoveDependency drops the edge only; a Blocked status stays until a user changes it.
func (s *Service) RemoveDependency(ctx context.Context, taskID, blockedByID uuid.UUID) error {
	if taskID == uuid.Nil || blockedByID == uuid.Nil || taskID == blockedByID {
		return ErrTaskInvalidArgs
	}
	return s.db.RemoveDependency(ctx, taskID, blockedByID)
}

func (s *Service) transitionTo(status TaskStatus) Transition {
	st := status
	return Transition{Status: &st, Timer: TimerModeFor(status), Now: s.clock()}
}

func (s *Service) applyStatus(ctx context.Context, tx Store, id uuid.UUID, status TaskStatus) (Task, error) {
	t, err := tx.TransitionTask(ctx, id, s.transitionTo(status))
	if err != nil {
		return Task{}, err
	}
	if t.ParentID != nil {
		if err := s.syncParent(ctx, tx, *t.ParentID); err != nil {
			return Task{}, err
		}
	}
	return t, nil
}

// syncParent re-derives one level up. The parent row is locked after the child,
// so sibling updates serialise on it.
func (s *Service) syncParent(ctx context.Context, tx Store, parentID uuid.UUID) error {
	parent, err := tx.LockTask(ctx, parentID)
	if err != nil {
		return err
	}

	children, err := tx.ListChildren(ctx, parentID)
	if err != nil {
		return err
	}

	statuses := make([]TaskStatus, 0, len(children))
	for _, c := range children {
		statuses = append(statuses, c.Status)
	}

	derived, ok := DeriveParentStatus(statuses)
	if !ok || derived == parent.Status {
		return nil
	}

	_, err = tx.SetDerivedStatus(ctx, parentID, derived)
	return err
}
