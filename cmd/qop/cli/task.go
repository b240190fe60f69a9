package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/ui"
)

var (
	taskProvider string
	taskDevice   string
	taskToken    string
)

var taskCmd = &cobra.Command{
	Use:   "task <task>",
	Short: "Show the full record of a task",
	Long: `Show the provider's record for a task.

The task may be a bare id or a composite device~~id reference. A bare id
needs --device, or the session default device is assumed.`,
	Args: cobra.ExactArgs(1),
	RunE: runTask,
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.Flags().StringVarP(&taskProvider, "provider", "p", "", "provider of the task's device")
	taskCmd.Flags().StringVarP(&taskDevice, "device", "d", "", "device the task ran on")
	taskCmd.Flags().StringVar(&taskToken, "token", "", "access token for this call only")
}

func runTask(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var opts []qop.Option
	if taskProvider != "" {
		opts = append(opts, qop.WithProvider(taskProvider))
	}
	if taskDevice != "" {
		opts = append(opts, qop.WithDevice(taskDevice))
	}
	if taskToken != "" {
		opts = append(opts, qop.WithToken(taskToken))
	}

	details, err := qop.GetTaskDetails(ctx, args[0], opts...)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(details)
	}

	fmt.Println(ui.Bold(details.Task.String()))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  state:\t%s\n", renderState(details.State))
	fmt.Fprintf(w, "  device:\t%s\n", details.Device.String())
	fmt.Fprintf(w, "  shots:\t%d\n", details.Shots)
	if !details.Created.IsZero() {
		fmt.Fprintf(w, "  created:\t%s\n", details.Created.Format(time.RFC3339))
	}
	if details.Source != "" {
		fmt.Fprintf(w, "  source:\t%d bytes\n", len(details.Source))
	}
	w.Flush()

	if len(details.Results) > 0 {
		fmt.Println()
		ui.Section("Results")
		keys := make([]string, 0, len(details.Results))
		for k := range details.Results {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rw := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(rw, "BITSTRING\tCOUNT")
		for _, k := range keys {
			fmt.Fprintf(rw, "%s\t%d\n", k, details.Results[k])
		}
		rw.Flush()
	}
	return nil
}

func renderState(state string) string {
	switch state {
	case "completed", "done", "finished":
		return ui.Green(state)
	case "failed", "error", "aborted":
		return ui.Red(state)
	default:
		return ui.Yellow(state)
	}
}
