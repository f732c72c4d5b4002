package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/projection"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

func NewOpenCmd(svc **service.Service) *cobra.Command {
	var (
		out    outputFlags
		folder string
	)

	cmd := &cobra.Command{
		Use:   "open <subfolder-id>",
		Short: "List the resolved contents of a subfolder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}
			ctx := context.Background()
			sub := models.NewID(args[0])

			folderID := models.NewID(folder)
			if folderID.IsZero() {
				snap, err := s.LoadTree(ctx, course)
				if err != nil {
					return err
				}
				id, ok := snap.FolderOf(sub)
				if !ok {
					return service.ErrUnresolvedFolder
				}
				folderID = id
			}

			items, err := s.SubfolderContents(ctx, course, folderID, sub)
			if err != nil {
				return err
			}
			if ok, err := out.write(cmd.OutOrStdout(), items); ok {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), projection.EmptyMessage)
				return nil
			}
			printItemsTable(cmd, items)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Folder id owning the subfolder")
	cmd.Flags().BoolVar(&out.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&out.yaml, "yaml", false, "Output in YAML format")

	return cmd
}

func printItemsTable(cmd *cobra.Command, items []models.ResolvedItem) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "TYPE\tID\tTITLE\tLINK")
	fmt.Fprintln(w, "----------\t----\t------------------------------\t----")

	for _, it := range items {
		title := truncateString(it.Title(), 30)
		link := it.URL()
		if !it.Resolved() {
			link = "(unavailable)"
		} else if it.Type == models.ItemAssignment {
			link = "submit with: mooc submit " + it.AssignmentID()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", projection.TypeLabel(it.Type), it.ID, title, link)
	}

	w.Flush()
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
