package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/config"
	"github.com/qop-dev/qop/internal/doctor"
	"github.com/qop-dev/qop/internal/ui"
	"github.com/qop-dev/qop/local"
	"github.com/qop-dev/qop/token"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnostic information about the qop environment",
	Long: `Displays diagnostic information about the qop environment for debugging.

This command shows:
- qop version and platform
- Config file and session defaults
- Registered providers
- Token store health (tokens are shown masked)
- Local ledger health

All token values are masked in the output.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.Bold("qop doctor"))
	fmt.Println()

	reg := doctor.NewRegistry()
	reg.Add(doctor.Section{Title: "Version", Report: reportVersion})
	reg.Add(doctor.Section{Title: "Config", Report: reportConfig})
	reg.Add(doctor.Section{Title: "Providers", Report: reportProviders})
	reg.Add(doctor.Section{Title: "Token Store", Report: reportTokens})
	reg.Add(doctor.Section{Title: "Local Ledger", Report: reportLedger})

	for _, section := range reg.Sections() {
		ui.Section(section.Title)
		if err := section.Report(os.Stdout); err != nil {
			fmt.Printf("%s %v\n", ui.FailTag(), err)
		}
		fmt.Println()
	}
	return nil
}

func reportVersion(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Version:\t%s\n", version)
	if commit != "none" {
		fmt.Fprintf(tw, "Commit:\t%s\n", commit)
	}
	fmt.Fprintf(tw, "Platform:\t%s/%s\n", runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Fprintf(tw, "Go:\t%s\n", info.GoVersion)
	}
	return tw.Flush()
}

func reportConfig(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	path := config.GlobalConfigPath()
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(tw, "File:\t%s\n", path)
	} else {
		fmt.Fprintf(tw, "File:\t%s (not present, using defaults)\n", path)
	}
	fmt.Fprintf(tw, "Default provider:\t%s\n", qop.DefaultProvider().Name())
	fmt.Fprintf(tw, "Default device:\t%s\n", qop.DefaultDevice().String())
	return tw.Flush()
}

func reportProviders(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range qop.ListProviders() {
		prov, err := qop.ParseProvider(name)
		if err != nil {
			continue
		}
		if _, ok := qop.Lookup(prov); ok {
			fmt.Fprintf(tw, "%s:\t%s registered\n", name, ui.OKTag())
		} else {
			fmt.Fprintf(tw, "%s:\t%s no backend registered\n", name, ui.WarnTag())
		}
	}
	return tw.Flush()
}

func reportTokens(w io.Writer) error {
	all, err := qop.Tokens()
	if err != nil {
		return fmt.Errorf("loading token store: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Default path:\t%s\n", token.DefaultAuthPath())
	fmt.Fprintf(tw, "Tokens:\t%d\n", len(all))

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s:\t%s\n", k, ui.Mask(all[k]))
	}
	return tw.Flush()
}

func reportLedger(w io.Writer) error {
	path := local.DefaultLedgerPath()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Path:\t%s\n", path)

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(tw, "State:\t%s not created yet\n", ui.InfoTag())
		return tw.Flush()
	}

	b := local.NewAt(path)
	defer b.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tasks, err := b.ListTasks(ctx, qop.TasksRequest{})
	if err != nil {
		fmt.Fprintf(tw, "State:\t%s %v\n", ui.FailTag(), err)
		return tw.Flush()
	}
	fmt.Fprintf(tw, "State:\t%s readable\n", ui.OKTag())
	fmt.Fprintf(tw, "Tasks:\t%d\n", len(tasks))
	return tw.Flush()
}
