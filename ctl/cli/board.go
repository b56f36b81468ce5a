package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taskboard-microservice/api/core"
	"taskboard-microservice/api/pkg/board"
)

var boardCmd = &cobra.Command{
	Use:   "board [project-id]",
	Short: "Show a project's board, one column per status",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoard,
}

func init() {
	boardCmd.Flags().Bool("subtasks", false, "list subtasks under their big task")
}

func runBoard(cmd *cobra.Command, args []string) error {
	user, err := actingUser()
	if err != nil {
		return err
	}
	projectID, err := parseID("project id", args[0])
	if err != nil {
		return err
	}
	withSubtasks, _ := cmd.Flags().GetBool("subtasks")
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		project, err := b.GetProject(ctx, projectID, user)
		if err != nil {
			return err
		}
		rows, err := b.ListTasks(ctx, core.ListTasksFilter{ProjectID: projectID})
		if err != nil {
			return err
		}

		columns := board.New(rows).Columns()
		return p.print(map[string]any{"project": project, "columns": columns}, func(tw *tabwriter.Writer) {
			writeColumns(tw, project.Name, columns, withSubtasks)
		})
	})
}

func writeColumns(tw *tabwriter.Writer, title string, columns []board.Column, withSubtasks bool) {
	fmt.Fprintf(tw, "%s\n", title)
	for _, col := range columns {
		fmt.Fprintf(tw, "\n%s (%d)\n", col.Status, len(col.Cards))
		for _, c := range col.Cards {
			progress := ""
			if c.SubtaskCount > 0 {
				progress = fmt.Sprintf("%d/%d", c.SubtasksDone, c.SubtaskCount)
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
				c.ID, c.Title, c.Priority, progress, formatDuration(c.TotalTimeSpent))
			if !withSubtasks {
				continue
			}
			for _, s := range c.Subtasks {
				fmt.Fprintf(tw, "    - %s\t%s\t%s\t\t%s\n",
					s.ID, s.Title, s.Status, formatDuration(s.TotalTimeSpent))
			}
		}
	}
}
