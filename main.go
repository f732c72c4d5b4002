package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Siddaarth-Babu/mooc/cmd"
	"github.com/Siddaarth-Babu/mooc/cmd/config"
	"github.com/Siddaarth-Babu/mooc/pkg/service"
)

var (
	svc     *service.Service
	cleanup func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "mooc",
		Short:         "Browse and manage MOOC course content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	// The logger is reconfigured once the config is read.
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		config.ConfigureLogger(logger, cfg.LogLevel)

		svc, cleanup, err = config.InitService(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(c *cobra.Command, args []string) {
		if cleanup != nil {
			cleanup()
		}
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewLoginCmd(&svc))
	rootCmd.AddCommand(cmd.NewLogoutCmd(&svc))
	rootCmd.AddCommand(cmd.NewWhoamiCmd(&svc))
	rootCmd.AddCommand(cmd.NewTreeCmd(&svc))
	rootCmd.AddCommand(cmd.NewFolderCmd(&svc))
	rootCmd.AddCommand(cmd.NewSubfolderCmd(&svc))
	rootCmd.AddCommand(cmd.NewItemCmd(&svc))
	rootCmd.AddCommand(cmd.NewOpenCmd(&svc))
	rootCmd.AddCommand(cmd.NewSubmitCmd(&svc))
	rootCmd.AddCommand(cmd.NewEvaluationCmd(&svc))
	rootCmd.AddCommand(cmd.NewInstructorCmd(&svc))
	rootCmd.AddCommand(cmd.NewTuiCmd(&svc))
	rootCmd.AddCommand(cmd.NewMockServerCmd(logger))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", service.UserMessage(err))
		os.Exit(1)
	}
}
