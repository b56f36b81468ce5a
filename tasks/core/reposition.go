package core

import (
	"context"
	"math"

	"github.com/google/uuid"
)

// RepositionInput describes a drop. Position wins over neighbours when both are set.
// AboveID is the task rendered directly above the slot (higher position).
type RepositionInput struct {
	Position *float64
	AboveID  *uuid.UUID
	BelowID  *uuid.UUID
	Status   *TaskStatus
}

// Reposition moves a task within or across status columns. Moving a parent to another
// status moves all of its subtasks with it.
func (s *Service) Reposition(ctx context.Context, id uuid.UUID, in RepositionInput) (Task, error) {
	if id == uuid.Nil {
		return Task{}, ErrTaskInvalidArgs
	}
	if in.Position != nil && (math.IsNaN(*in.Position) || math.IsInf(*in.Position, 0)) {
		return Task{}, ErrTaskInvalidArgs
	}
	if in.Status != nil && !in.Status.Valid() {
		return Task{}, ErrTaskInvalidArgs
	}
	if (in.AboveID != nil && *in.AboveID == id) || (in.BelowID != nil && *in.BelowID == id) {
		return Task{}, ErrTaskInvalidArgs
	}

	var out Task
	err := s.db.WithinTx(ctx, func(tx Store) error {
		t, err := tx.GetTask(ctx, id)
		if err != nil {
			return err
		}

		column := t.Status
		if in.Status != nil {
			column = *in.Status
		}

		pos, err := s.slotPosition(ctx, tx, t, column, in)
		if err != nil {
			return err
		}

		if in.Status != nil {
			// children first: keeps the child-before-parent lock order of SetStatus
			children, err := tx.ListChildren(ctx, id)
			if err != nil {
				return err
			}
			for _, c := range children {
				if _, err := tx.TransitionTask(ctx, c.ID, s.transitionTo(*in.Status)); err != nil {
					return err
				}
			}
			if _, err := tx.TransitionTask(ctx, id, s.transitionTo(*in.Status)); err != nil {
				return err
			}
		}

		if t, err = tx.SetPosition(ctx, id, pos); err != nil {
			return err
		}

		if in.Status != nil && t.ParentID != nil {
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

func (s *Service) slotPosition(ctx context.Context, tx Store, t Task, column TaskStatus, in RepositionInput) (float64, error) {
	if in.Position != nil {
		return *in.Position, nil
	}

	above, below, err := neighbourPositions(ctx, tx, t, in)
	if err != nil {
		return 0, err
	}
	if above == nil && below == nil {
		return columnTopPosition(ctx, tx, t, column, in)
	}

	if pos, ok := PositionBetween(above, below); ok {
		return pos, nil
	}

	// the gap is exhausted: respace the column once and retry
	if err := respaceColumn(ctx, tx, t.ProjectID, column); err != nil {
		return 0, err
	}
	if above, below, err = neighbourPositions(ctx, tx, t, in); err != nil {
		return 0, err
	}
	if pos, ok := PositionBetween(above, below); ok {
		return pos, nil
	}
	return 0, ErrTaskInvalidArgs
}

// columnTopPosition places a column change with no neighbours on top of the target column.
// An empty column starts at the priority base weight; subtasks keep their position.
func columnTopPosition(ctx context.Context, tx Store, t Task, column TaskStatus, in RepositionInput) (float64, error) {
	if in.Status == nil || *in.Status == t.Status {
		return 0, ErrTaskInvalidArgs
	}
	if t.ParentID != nil {
		return t.Position, nil
	}

	cur, err := tx.ColumnPositions(ctx, t.ProjectID, column)
	if err != nil {
		return 0, err
	}
	for _, p := range cur {
		if p.ID != t.ID {
			return p.Position + PositionStep, nil
		}
	}
	return t.Priority.BaseWeight(), nil
}

// neighbourPositions loads the drop neighbours; they must belong to t's project.
func neighbourPositions(ctx context.Context, tx Store, t Task, in RepositionInput) (above, below *float64, err error) {
	load := func(id uuid.UUID) (*float64, error) {
		n, err := tx.GetTask(ctx, id)
		if err != nil {
			return nil, err
		}
		if n.ProjectID != t.ProjectID {
			return nil, ErrTaskInvalidArgs
		}
		return &n.Position, nil
	}

	if in.AboveID != nil {
		if above, err = load(*in.AboveID); err != nil {
			return nil, nil, err
		}
	}
	if in.BelowID != nil {
		if below, err = load(*in.BelowID); err != nil {
			return nil, nil, err
		}
	}
	return above, below, nil
}

func respaceColumn(ctx context.Context, tx Store, projectID uuid.UUID, column TaskStatus) error {
	cur, err := tx.ColumnPositions(ctx, projectID, column)
	if err != nil || len(cur) == 0 {
		return err
	}

	next := Respace(cur[0].Position, len(cur))
	for i, p := range cur {
		if _, err := tx.SetPosition(ctx, p.ID, next[i]); err != nil {
			return err
		}
	}
	return nil
}
