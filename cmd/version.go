package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set through -ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Branch    string `json:"branch"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (i versionInfo) String() string {
	return fmt.Sprintf("mooc %s (commit %s, branch %s, %s %s)", i.Version, i.Commit, i.Branch, i.GoVersion, i.Platform)
}

func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display the version, commit, branch, and build information for mooc",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				Commit:    Commit,
				Branch:    Branch,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			if jsonOutput {
				return outputJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")

	return cmd
}
