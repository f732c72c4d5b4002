package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/pkg/models"
	"github.com/Siddaarth-Babu/mooc/pkg/projection"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

// NewItemCmd creates the `item` command and its subcommands.
func NewItemCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Create and inspect content items",
	}

	cmd.AddCommand(newItemAddCmd(svc))
	cmd.AddCommand(newItemShowCmd(svc))

	return cmd
}

type itemFlags struct {
	folder       string
	title        string
	url          string
	duration     int
	documentType string
	author       string
	publisher    string
	edition      string
}

func (f itemFlags) input(t models.ItemType) service.ItemInput {
	switch t {
	case models.ItemVideo:
		return service.VideoInput{Title: f.title, URLLink: f.url, Duration: f.duration}
	case models.ItemNotes:
		return service.NotesInput{Title: f.title, URLLink: f.url, DocumentType: f.documentType}
	default:
		return service.BookInput{Title: f.title, Author: f.author, Publisher: f.publisher, Edition: f.edition}
	}
}

func newItemAddCmd(svc **service.Service) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:       "add video|notes|book <subfolder-id>",
		Short:     "Create an item in a subfolder",
		ValidArgs: []string{"video", "notes", "book"},
		Args:      cobra.ExactArgs(2),
		Long: `Create a video, notes or book item in a subfolder. The owning folder is
looked up in the course tree unless --folder is given.

Examples:
  mooc item add video 2 --title "Intro video" --url https://example.com/v.mp4 --duration 600
  mooc item add notes 2 --title "Slides" --url https://example.com/s.pdf --document-type pdf
  mooc item add book 2 --title "SICP" --author "Abelson, Sussman"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}

			variant, ok := models.ParseItemType(args[0])
			if !ok || !variant.Creatable() {
				return fmt.Errorf("cannot create items of type %q (want video, notes or book)", args[0])
			}

			ctx := context.Background()
			target := service.ItemTarget{
				CourseID:    course,
				FolderID:    models.NewID(flags.folder),
				SubfolderID: models.NewID(args[1]),
			}
			if target.FolderID.IsZero() {
				// The folder is resolved from the tree.
				if _, err := s.LoadTree(ctx, course); err != nil {
					return err
				}
			}

			item, err := s.CreateItem(ctx, target, flags.input(variant))
			if err != nil {
				return err
			}
			if item == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s item\n", variant)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s item [%s]\n", variant, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.folder, "folder", "", "Folder id owning the subfolder")
	cmd.Flags().StringVarP(&flags.title, "title", "t", "", "Item title")
	cmd.Flags().StringVarP(&flags.url, "url", "u", "", "Link (video, notes)")
	cmd.Flags().IntVar(&flags.duration, "duration", 0, "Duration in seconds (video)")
	cmd.Flags().StringVar(&flags.documentType, "document-type", "", "Document format (notes)")
	cmd.Flags().StringVar(&flags.author, "author", "", "Author (book)")
	cmd.Flags().StringVar(&flags.publisher, "publisher", "", "Publisher (book)")
	cmd.Flags().StringVar(&flags.edition, "edition", "", "Edition (book)")

	return cmd
}

func newItemShowCmd(svc **service.Service) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "show <type> <id>",
		Short: "Show the detail of an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := models.ParseItemType(args[0])
			if !ok {
				return fmt.Errorf("unknown item type %q", args[0])
			}

			item, err := (*svc).ItemDetail(context.Background(), models.Item{ID: models.NewID(args[1]), Type: t})
			if err != nil {
				return err
			}
			if ok, err := out.write(cmd.OutOrStdout(), item); ok {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(projection.DetailLines(item), "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&out.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&out.yaml, "yaml", false, "Output in YAML format")

	return cmd
}
