package cli

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/board"
	taskcore "taskboard-microservice/tasks/core"
)

// predictFunc builds the local event matching a server call from the board as loaded.
type predictFunc func(bd *board.Board, now time.Time) board.Event

// addBoardFlags lets a mutating command print the whole board after the call.
func addBoardFlags(c *cobra.Command) {
	c.Flags().Bool("board", false, "print the project's board after the change")
	c.Flags().Bool("subtasks", false, "with --board, list subtasks under their big task")
}

type boardResult struct {
	Task    core.Task      `json:"task"`
	Columns []board.Column `json:"columns"`
}

// mutateOnBoard applies the predicted event to a local copy of the project board, runs
// the call and then reconciles with the server rows. A failed call rolls the copy back.
func mutateOnBoard(
	ctx context.Context,
	b core.Board,
	log *slog.Logger,
	id uuid.UUID,
	predict predictFunc,
	call func(ctx context.Context, b core.Board) (core.Task, error),
) (boardResult, error) {
	cur, err := b.GetTask(ctx, id)
	if err != nil {
		return boardResult{}, err
	}
	filter := core.ListTasksFilter{ProjectID: cur.ProjectID}
	rows, err := b.ListTasks(ctx, filter)
	if err != nil {
		return boardResult{}, err
	}

	bd := board.New(rows)
	rollback, err := bd.Apply(predict(bd, time.Now()))
	if err != nil {
		return boardResult{}, err
	}
	predicted, _ := bd.Task(id)

	t, err := call(ctx, b)
	if err != nil {
		rollback()
		if restored, ok := bd.Task(id); ok {
			log.Debug("call failed, local board rolled back", "task", id, "status", restored.Status)
		}
		return boardResult{}, err
	}

	rows, err = b.ListTasks(ctx, filter)
	if err != nil {
		return boardResult{}, err
	}
	bd.Reconcile(rows)
	if predicted.Status != t.Status || predicted.Position != t.Position || predicted.Timer.Status != t.Timer.Status {
		log.Debug("local prediction differed from server",
			"task", id, "predicted_status", predicted.Status, "status", t.Status,
			"predicted_position", predicted.Position, "position", t.Position)
	}

	return boardResult{Task: t, Columns: bd.Columns()}, nil
}

// predictMove mirrors the service's slot choice closely enough for display; the
// reconcile that follows corrects respaced columns.
func predictMove(id uuid.UUID, in core.RepositionInput) predictFunc {
	return func(bd *board.Board, now time.Time) board.Event {
		t, _ := bd.Task(id)
		ev := board.Moved{ID: id, Position: t.Position, Status: in.Status, At: now}

		neighbour := func(nid *uuid.UUID) *float64 {
			if nid == nil {
				return nil
			}
			if n, ok := bd.Task(*nid); ok {
				return &n.Position
			}
			return nil
		}

		switch {
		case in.Position != nil:
			ev.Position = *in.Position
		case in.AboveID != nil || in.BelowID != nil:
			if pos, ok := taskcore.PositionBetween(neighbour(in.AboveID), neighbour(in.BelowID)); ok {
				ev.Position = pos
			}
		case in.Status != nil && t.ParentID == nil:
			ev.Position = t.Priority.BaseWeight()
			for _, col := range bd.Columns() {
				if col.Status != *in.Status {
					continue
				}
				for _, c := range col.Cards {
					if c.ID != id {
						ev.Position = c.Position + taskcore.PositionStep
						break
					}
				}
			}
		}
		return ev
	}
}

func writeBoardResult(tw *tabwriter.Writer, r boardResult, withSubtasks bool) {
	writeTask(tw, r.Task)
	fmt.Fprintln(tw)
	writeColumns(tw, "Project "+r.Task.ProjectID.String(), r.Columns, withSubtasks)
}
