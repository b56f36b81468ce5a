package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taskboard-microservice/api/core"
	taskcore "taskboard-microservice/tasks/core"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Work with tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a project's tasks with subtask rollups",
	Args:  cobra.NoArgs,
	RunE:  runTasksList,
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task or subtask",
	Args:  cobra.NoArgs,
	RunE:  runTasksCreate,
}

var tasksShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a task with its dependencies",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksShow,
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete [task-id]",
	Short: "Delete a task and its subtasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksDelete,
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksShowCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)

	lf := tasksListCmd.Flags()
	lf.String("project", "", "project id")
	lf.String("status", "", "only tasks with this status")
	lf.String("parent", "", "only subtasks of this task")
	lf.Bool("top-level", false, "only top-level tasks")
	_ = tasksListCmd.MarkFlagRequired("project")
	tasksListCmd.MarkFlagsMutuallyExclusive("parent", "top-level")

	cf := tasksCreateCmd.Flags()
	cf.String("project", "", "project id")
	cf.String("title", "", "task title")
	cf.String("description", "", "task description")
	cf.String("status", "", "initial status (default To Do)")
	cf.String("priority", "", "Low|Medium|High|Urgent (default Medium)")
	cf.String("type", "", "big|small (default small)")
	cf.String("parent", "", "parent big task id")
	cf.String("deadline", "", "deadline, YYYY-MM-DD")
	cf.String("assignee", "", "assignee user id")
	_ = tasksCreateCmd.MarkFlagRequired("project")
	_ = tasksCreateCmd.MarkFlagRequired("title")
}

func runTasksList(cmd *cobra.Command, _ []string) error {
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("project")
	projectID, err := parseID("project id", raw)
	if err != nil {
		return err
	}
	f := core.ListTasksFilter{ProjectID: projectID}
	if f.Status, err = enumFlag(cmd, "status", taskcore.ParseTaskStatus); err != nil {
		return err
	}
	if f.ParentID, err = idFlag(cmd, "parent"); err != nil {
		return err
	}
	f.TopLevelOnly, _ = cmd.Flags().GetBool("top-level")

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		rows, err := b.ListTasks(ctx, f)
		if err != nil {
			return err
		}
		return p.print(rows, func(tw *tabwriter.Writer) {
			writeTaskRows(tw, rows)
		})
	})
}

func writeTaskRows(tw *tabwriter.Writer, rows []core.TaskSummary) {
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tSTATUS\tPRIORITY\tSUBTASKS\tTIME\tASSIGNEE")
	for _, t := range rows {
		subtasks := "-"
		if t.Type == taskcore.TypeBig {
			subtasks = fmt.Sprintf("%d/%d", t.SubtasksDone, t.SubtaskCount)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Type, t.Status, t.Priority, subtasks,
			formatDuration(t.TotalTimeSpent), orDash(t.AssigneeID))
	}
}

func runTasksCreate(cmd *cobra.Command, _ []string) error {
	user, err := actingUser()
	if err != nil {
		return err
	}
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("project")
	projectID, err := parseID("project id", raw)
	if err != nil {
		return err
	}

	in := core.CreateTaskInput{ProjectID: projectID, CreatorID: user}
	in.Title, _ = cmd.Flags().GetString("title")
	in.Description, _ = cmd.Flags().GetString("description")
	if in.Status, err = enumFlag(cmd, "status", taskcore.ParseTaskStatus); err != nil {
		return err
	}
	if in.Priority, err = enumFlag(cmd, "priority", taskcore.ParsePriority); err != nil {
		return err
	}
	if in.Type, err = enumFlag(cmd, "type", taskcore.ParseTaskType); err != nil {
		return err
	}
	if in.ParentID, err = idFlag(cmd, "parent"); err != nil {
		return err
	}
	if in.Deadline, err = dateFlag(cmd, "deadline"); err != nil {
		return err
	}
	if a, _ := cmd.Flags().GetString("assignee"); a != "" {
		in.AssigneeID = &a
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		t, err := b.CreateTask(ctx, in)
		if err != nil {
			return err
		}
		return p.print(t, func(tw *tabwriter.Writer) {
			writeTask(tw, t)
		})
	})
}

func runTasksShow(cmd *cobra.Command, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return err
	}
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		d, err := b.GetTask(ctx, id)
		if err != nil {
			return err
		}
		return p.print(d, func(tw *tabwriter.Writer) {
			writeTask(tw, d.Task)
			fmt.Fprintf(tw, "blocked by\t%s\n", refList(d.BlockedBy))
			fmt.Fprintf(tw, "blocking\t%s\n", refList(d.Blocking))
		})
	})
}

func runTasksDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID("task id", args[0])
	if err != nil {
		return err
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		if err := b.DeleteTask(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		return nil
	})
}

func writeTask(tw *tabwriter.Writer, t core.Task) {
	fmt.Fprintf(tw, "id\t%s\n", t.ID)
	fmt.Fprintf(tw, "title\t%s\n", t.Title)
	fmt.Fprintf(tw, "type\t%s\n", t.Type)
	fmt.Fprintf(tw, "status\t%s\n", t.Status)
	fmt.Fprintf(tw, "priority\t%s\n", t.Priority)
	fmt.Fprintf(tw, "position\t%g\n", t.Position)
	if t.ParentID != nil {
		fmt.Fprintf(tw, "parent\t%s\n", t.ParentID)
	}
	fmt.Fprintf(tw, "deadline\t%s\n", formatDate(t.Deadline))
	fmt.Fprintf(tw, "assignee\t%s\n", orDash(t.AssigneeID))
	fmt.Fprintf(tw, "timer\t%s\n", t.Timer.Status)
	fmt.Fprintf(tw, "time spent\t%s\n", formatDuration(t.TotalTimeSpent))
}

func refList(refs []taskcore.TaskRef) string {
	if len(refs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		parts = append(parts, fmt.Sprintf("%s (%s)", r.Title, r.Status))
	}
	return strings.Join(parts, ", ")
}
