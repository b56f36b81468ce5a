package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/spf13/cobra"

	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/board"
	taskcore "taskboard-microservice/tasks/core"
)

var statusCmd = &cobra.Command{
	Use:   "status [task-id] [status]",
	Short: "Set a task's status; the timer and parent task follow",
	Example: `  boardctl status 3f1c... "In Progress"
  boardctl status 3f1c... done`,
	Args: cobra.ExactArgs(2),
	RunE: runStatus,
}

var moveCmd = &cobra.Command{
	Use:   "move [task-id]",
	Short: "Reposition a task, optionally into another column",
	Args:  cobra.ExactArgs(1),
	RunE:  runMove,
}

var assignCmd = &cobra.Command{
	Use:   "assign [task-id] [user-id]",
	Short: "Assign a task; omit the user to unassign",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runAssign,
}

func init() {
	mf := moveCmd.Flags()
	mf.Float64("position", 0, "explicit position weight")
	mf.String("above", "", "id of the card that ends up above")
	mf.String("below", "", "id of the card that ends up below")
	mf.String("status", "", "target column")

	addBoardFlags(statusCmd)
	addBoardFlags(moveCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return err
	}
	st, err := taskcore.ParseTaskStatus(args[1])
	if err != nil {
		return fmt.Errorf("invalid status %q", args[1])
	}

	predict := func(_ *board.Board, now time.Time) board.Event {
		return board.StatusChanged{ID: id, Status: st, At: now}
	}
	return mutateTask(cmd, id, predict, func(ctx context.Context, b core.Board) (core.Task, error) {
		return b.SetStatus(ctx, id, st)
	})
}

func runMove(cmd *cobra.Command, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return err
	}

	var in core.RepositionInput
	if cmd.Flags().Changed("position") {
		pos, _ := cmd.Flags().GetFloat64("position")
		in.Position = &pos
	}
	if in.AboveID, err = idFlag(cmd, "above"); err != nil {
		return err
	}
	if in.BelowID, err = idFlag(cmd, "below"); err != nil {
		return err
	}
	if in.Status, err = enumFlag(cmd, "status", taskcore.ParseTaskStatus); err != nil {
		return err
	}

	return mutateTask(cmd, id, predictMove(id, in), func(ctx context.Context, b core.Board) (core.Task, error) {
		return b.Reposition(ctx, id, in)
	})
}

func runAssign(cmd *cobra.Command, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return err
	}
	var assignee *string
	if len(args) == 2 {
		assignee = &args[1]
	}

	return mutateTask(cmd, id, nil, func(ctx context.Context, b core.Board) (core.Task, error) {
		return b.AssignTask(ctx, id, assignee)
	})
}

// mutateTask runs a call that returns the updated task and prints it. With --board and a
// predict func the change goes through a local board first and the columns are printed too.
func mutateTask(
	cmd *cobra.Command,
	id uuid.UUID,
	predict predictFunc,
	call func(ctx context.Context, b core.Board) (core.Task, error),
) error {
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}
	onBoard := false
	if predict != nil && cmd.Flags().Lookup("board") != nil {
		onBoard, _ = cmd.Flags().GetBool("board")
	}
	withSubtasks := false
	if onBoard {
		withSubtasks, _ = cmd.Flags().GetBool("subtasks")
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		if onBoard {
			r, err := mutateOnBoard(ctx, b, newLogger(), id, predict, call)
			if err != nil {
				return err
			}
			return p.print(r, func(tw *tabwriter.Writer) {
				writeBoardResult(tw, r, withSubtasks)
			})
		}

		t, err := call(ctx, b)
		if err != nil {
			return err
		}
		return p.print(t, func(tw *tabwriter.Writer) {
			writeTask(tw, t)
		})
	})
}
