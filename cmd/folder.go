package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

// NewFolderCmd creates the `folder` command and its subcommands.
func NewFolderCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage top-level folders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Create a top-level folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}
			created, err := s.CreateFolder(context.Background(), course, args[0])
			if err != nil {
				return err
			}
			printCreated(cmd, "folder", created)
			return nil
		},
	})

	return cmd
}

// NewSubfolderCmd creates the `subfolder` command and its subcommands.
func NewSubfolderCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subfolder",
		Short: "Manage subfolders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <folder-id> <title>",
		Short: "Create a subfolder inside a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}
			created, err := s.CreateSubfolder(context.Background(), course, models.NewID(args[0]), args[1])
			if err != nil {
				return err
			}
			printCreated(cmd, "subfolder", created)
			return nil
		},
	})

	return cmd
}

// printCreated reports a created folder. Some endpoints only acknowledge,
// leaving nothing to show but the title.
func printCreated(cmd *cobra.Command, kind string, f *models.Folder) {
	if f == nil || f.ID.IsZero() {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", kind)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s %q [%s]\n", kind, f.Title, f.ID)
}
