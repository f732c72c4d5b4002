package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/pkg/projection"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
	"github.com/Siddaarth-Babu/mooc/pkg/tree"
)

func NewTreeCmd(svc **service.Service) *cobra.Command {
	var (
		out       outputFlags
		collapsed bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the content tree of the course",
		Long: `Fetch and print the folder/subfolder/item tree of a course.

Examples:
  mooc tree -C C1
  mooc tree --collapsed     # folders only
  mooc tree --yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}

			snap, loadErr := s.LoadTree(context.Background(), course)
			if out.structured() {
				if loadErr != nil {
					return loadErr
				}
				_, err := out.write(cmd.OutOrStdout(), snap.Folders())
				return err
			}

			exp := tree.NewExpansion()
			if !collapsed {
				exp.ExpandAll(snap)
			}
			view := projection.ForRole(s.Role())
			fmt.Fprint(cmd.OutOrStdout(), projection.Text(snap, exp, view))

			if loadErr == nil {
				c := snap.Counts()
				fmt.Fprintf(cmd.ErrOrStderr(), "%d folders, %d subfolders, %d items\n", c.Folders, c.Subfolders, c.Items)
			}
			return loadErr
		},
	}

	cmd.Flags().BoolVar(&out.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&out.yaml, "yaml", false, "Output in YAML format")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Only show top-level folders")

	return cmd
}
