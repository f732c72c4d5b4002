package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/internal/mockapi"
)

// NewMockServerCmd creates the `mooc mock-server` command.
func NewMockServerCmd(logger logrus.FieldLogger) *cobra.Command {
	var (
		addr   string
		secret string
		noSeed bool
	)

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory course backend for local use",
		Long: `Serve every endpoint the client uses from memory. The demo course C1
and one login per role (instructor, admin, analyst and student at
example.com, password "password") are seeded unless --no-seed is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []mockapi.Option{mockapi.WithLogger(logger)}
			if secret != "" {
				opts = append(opts, mockapi.WithSecret([]byte(secret)))
			}
			srv := mockapi.New(opts...)
			if !noSeed {
				if err := srv.Seed(); err != nil {
					return fmt.Errorf("seed mock backend: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.ErrOrStderr(), "Mock backend listening on %s\n", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Listen address")
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret for issued tokens")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "Start with an empty backend")

	return cmd
}
