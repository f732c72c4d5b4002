package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

func NewLoginCmd(svc **service.Service) *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the course backend",
		Long: `Exchange credentials for a session token. The token is kept in the
local session store until it expires or you log out.

Examples:
  mooc login --email student@example.com
  MOOC_PASSWORD=secret mooc login --email student@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if password == "" {
				password = os.Getenv("MOOC_PASSWORD")
			}
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			sess, err := s.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.Email, sess.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")

	return cmd
}

func NewLogoutCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func NewWhoamiCmd(svc **service.Service) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := (*svc).Session()
			if sess == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			if ok, err := out.write(cmd.OutOrStdout(), sess); ok {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Email:   %s\n", sess.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Role:    %s\n", sess.Role)
			if sess.UserID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", sess.UserID)
			}
			if !sess.ExpiresAt.IsZero() {
				fmt.Fprintf(cmd.OutOrStdout(), "Expires: %s\n", sess.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&out.json, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&out.yaml, "yaml", false, "Output in YAML format")

	return cmd
}
