package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"taskboard-microservice/api/core"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage blocked-by edges between tasks",
}

var depAddCmd = &cobra.Command{
	Use:   "add [task-id] [blocked-by-id]",
	Short: "Mark a task as blocked by another",
	Args:  cobra.ExactArgs(2),
	RunE:  runDepAdd,
}

var depRmCmd = &cobra.Command{
	Use:     "rm [task-id] [blocked-by-id]",
	Aliases: []string{"remove"},
	Short:   "Remove a blocked-by edge",
	Args:    cobra.ExactArgs(2),
	RunE:    runDepRm,
}

func init() {
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRmCmd)
}

func runDepAdd(cmd *cobra.Command, args []string) error {
	taskID, blockedBy, err := edgeArgs(args)
	if err != nil {
		return err
	}

	return mutateTask(cmd, taskID, nil, func(ctx context.Context, b core.Board) (core.Task, error) {
		return b.AddDependency(ctx, taskID, blockedBy)
	})
}

func runDepRm(cmd *cobra.Command, args []string) error {
	taskID, blockedBy, err := edgeArgs(args)
	if err != nil {
		return err
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		if err := b.RemoveDependency(ctx, taskID, blockedBy); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s -> %s\n", taskID, blockedBy)
		return nil
	})
}

func edgeArgs(args []string) (uuid.UUID, uuid.UUID, error) {
	taskID, err := parseID("task id", args[0])
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	blockedBy, err := parseID("blocked-by id", args[1])
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return taskID, blockedBy, nil
}
