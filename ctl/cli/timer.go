package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/board"
	taskcore "taskboard-microservice/tasks/core"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Start or stop a task's timer",
}

var timerStartCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Start the timer in working or break mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimerStart,
}

var timerStopCmd = &cobra.Command{
	Use:   "stop [task-id]",
	Short: "Stop the timer, committing working time",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimerStop,
}

func init() {
	timerCmd.AddCommand(timerStartCmd)
	timerCmd.AddCommand(timerStopCmd)

	timerStartCmd.Flags().String("mode", "working", "working|break")
	addBoardFlags(timerStartCmd)
	addBoardFlags(timerStopCmd)
}

func runTimerStart(cmd *cobra.Command, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetString("mode")
	mode, err := taskcore.ParseTimerStatus(raw)
	if err != nil || mode == taskcore.TimerIdle {
		return fmt.Errorf("invalid --mode %q: want working or break", raw)
	}

	predict := func(_ *board.Board, now time.Time) board.Event {
		return board.TimerStarted{ID: id, Mode: mode, At: now}
	}
	return mutateTask(cmd, id, predict, func(ctx context.Context, b core.Board) (core.Task, error) {
		return b.StartTimer(ctx, id, mode)
	})
}

func runTimerStop(cmd *cobra.Command, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return err
	}

	predict := func(_ *board.Board, now time.Time) board.Event {
		return board.TimerStopped{ID: id, At: now}
	}
	return mutateTask(cmd, id, predict, func(ctx context.Context, b core.Board) (core.Task, error) {
		return b.StopTimer(ctx, id)
	})
}
