package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

// NewInstructorCmd creates the `instructor` command and its subcommands.
func NewInstructorCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructor",
		Short: "Manage the instructors of a course (admin)",
	}

	var out outputFlags
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List assigned instructors",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}
			instructors, err := s.ListInstructors(context.Background(), course)
			if err != nil {
				return err
			}
			if ok, err := out.write(cmd.OutOrStdout(), instructors); ok {
				return err
			}
			if len(instructors) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No instructors assigned")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL")
			for _, ins := range instructors {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ins.ID, ins.Name, ins.Email)
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&out.json, "json", false, "Output in JSON format")
	list.Flags().BoolVar(&out.yaml, "yaml", false, "Output in YAML format")

	deassign := &cobra.Command{
		Use:   "deassign <instructor-id>",
		Short: "Remove an instructor from the course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}
			if err := s.DeassignInstructor(context.Background(), course, models.NewID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deassigned instructor %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, deassign)
	return cmd
}
