package commands

import (
	"fmt"

	"github.com/holiy930561/LenDon"
	"github.com/spf13/cobra"
)

var (
	versionInfo = VersionInfo{
		Version: lendon.Version,
		Commit:  "unknown",
		Date:    "unknown",
	}
)

// VersionInfo contains build information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// SetVersion sets the version information (called from main)
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		// Version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", lendon.Name, versionInfo.Version)
			if versionInfo.Commit != "unknown" && versionInfo.Commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  commit:  %s\n", versionInfo.Commit)
			}
			if versionInfo.Date != "unknown" && versionInfo.Date != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  built:   %s\n", versionInfo.Date)
			}
		},
	}

	return cmd
}
