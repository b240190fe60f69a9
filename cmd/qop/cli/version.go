package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Version returns the build version string.
func Version() string {
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of qop",
	RunE: func(cmd *cobra.Command, args []string) error {
		goVersion := ""
		if info, ok := debug.ReadBuildInfo(); ok {
			goVersion = info.GoVersion
		}

		if jsonOut {
			out := map[string]string{"version": version}
			if commit != "none" {
				out["commit"] = commit
			}
			if date != "unknown" {
				out["built"] = date
			}
			if goVersion != "" {
				out["go"] = goVersion
			}
			return printJSON(out)
		}

		fmt.Printf("qop %s\n", version)
		if commit != "none" {
			fmt.Printf("  commit: %s\n", commit)
		}
		if date != "unknown" {
			fmt.Printf("  built:  %s\n", date)
		}
		if goVersion != "" {
			fmt.Printf("  go:     %s\n", goVersion)
		}
		return nil
	},
}
