package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/pkg/projection"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

func NewSubmitCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <assignment-id> <url>",
		Short: "Submit a link for an assignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}
			if err := s.SubmitAssignment(context.Background(), course, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted assignment %s\n", args[0])
			return nil
		},
	}
}

func NewEvaluationCmd(svc **service.Service) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "evaluation",
		Short: "Show your marks and grade for the course",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			course, err := courseOf(s)
			if err != nil {
				return err
			}
			eval, err := s.Evaluation(context.Background(), course)
			if out.structured() {
				if err != nil {
					return err
				}
				_, err := out.write(cmd.OutOrStdout(), eval)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), projection.EvaluationLine(eval, err))
			return nil
		},
	}

	cmd.Flags().BoolVar(&out.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&out.yaml, "yaml", false, "Output in YAML format")

	return cmd
}
