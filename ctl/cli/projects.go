package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"taskboard-microservice/api/core"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and create projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects the acting user belongs to",
	Args:  cobra.NoArgs,
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project; the acting user becomes its Admin",
	Args:  cobra.NoArgs,
	RunE:  runProjectsCreate,
}

var projectsMembersCmd = &cobra.Command{
	Use:   "members [project-id]",
	Short: "List project members",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsMembers,
}

var projectsInviteCmd = &cobra.Command{
	Use:   "invite [project-id] [email]",
	Short: "Invite someone to a project by email",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectsInvite,
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsMembersCmd)
	projectsCmd.AddCommand(projectsInviteCmd)

	projectsCreateCmd.Flags().String("name", "", "project name")
	projectsCreateCmd.Flags().String("description", "", "project description")
	projectsCreateCmd.Flags().String("start", "", "start date, YYYY-MM-DD")
	projectsCreateCmd.Flags().String("end", "", "end date, YYYY-MM-DD")
	_ = projectsCreateCmd.MarkFlagRequired("name")

	projectsInviteCmd.Flags().String("role", "Member", "role granted on acceptance")
}

func runProjectsList(cmd *cobra.Command, _ []string) error {
	user, err := actingUser()
	if err != nil {
		return err
	}
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		items, err := b.ListProjects(ctx, user)
		if err != nil {
			return err
		}
		return p.print(items, func(tw *tabwriter.Writer) {
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tROLE\tSTART\tEND")
			for _, pr := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					pr.ID, pr.Name, pr.Status, pr.Role, formatDate(pr.StartDate), formatDate(pr.EndDate))
			}
		})
	})
}

func runProjectsCreate(cmd *cobra.Command, _ []string) error {
	user, err := actingUser()
	if err != nil {
		return err
	}
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	in := core.CreateProjectInput{CreatorID: user}
	in.Name, _ = cmd.Flags().GetString("name")
	in.Description, _ = cmd.Flags().GetString("description")
	if in.StartDate, err = dateFlag(cmd, "start"); err != nil {
		return err
	}
	if in.EndDate, err = dateFlag(cmd, "end"); err != nil {
		return err
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		pr, err := b.CreateProject(ctx, in)
		if err != nil {
			return err
		}
		return p.print(pr, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "created project\t%s\n", pr.ID)
			fmt.Fprintf(tw, "name\t%s\n", pr.Name)
		})
	})
}

func runProjectsMembers(cmd *cobra.Command, args []string) error {
	user, err := actingUser()
	if err != nil {
		return err
	}
	projectID, err := parseID("project id", args[0])
	if err != nil {
		return err
	}
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		items, err := b.ListMembers(ctx, projectID, user)
		if err != nil {
			return err
		}
		return p.print(items, func(tw *tabwriter.Writer) {
			fmt.Fprintln(tw, "USER\tROLE\tJOINED")
			for _, m := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.UserID, m.Role, m.JoinedAt.Format(time.DateOnly))
			}
		})
	})
}

func runProjectsInvite(cmd *cobra.Command, args []string) error {
	user, err := actingUser()
	if err != nil {
		return err
	}
	projectID, err := parseID("project id", args[0])
	if err != nil {
		return err
	}
	role, _ := cmd.Flags().GetString("role")
	p, err := printerFor(cmd)
	if err != nil {
		return err
	}

	return withBoard(cmd, func(ctx context.Context, b core.Board) error {
		inv, err := b.InviteUser(ctx, projectID, user, args[1], role)
		if err != nil {
			return err
		}
		return p.print(inv, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "invited\t%s\n", inv.Email)
			fmt.Fprintf(tw, "token\t%s\n", inv.Token)
			fmt.Fprintf(tw, "expires\t%s\n", inv.ExpiresAt.Format(time.RFC3339))
		})
	})
}
