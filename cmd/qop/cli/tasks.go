package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
)

var (
	tasksProvider string
	tasksDevice   string
	tasksToken    string
	tasksFilters  []string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks visible to the resolved token",
	Long: `List task handles for a provider, or for one device with --device.

Filters pass through to the provider, e.g. --filter state=completed or
--filter limit=10.`,
	RunE: runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.Flags().StringVarP(&tasksProvider, "provider", "p", "", "provider to query (default: session default)")
	tasksCmd.Flags().StringVarP(&tasksDevice, "device", "d", "", "restrict the listing to one device")
	tasksCmd.Flags().StringVar(&tasksToken, "token", "", "access token for this call only")
	tasksCmd.Flags().StringArrayVar(&tasksFilters, "filter", nil, "provider-side filter (KEY=VALUE, repeatable)")
}

func runTasks(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	filters, err := parseParamFlags(tasksFilters)
	if err != nil {
		return err
	}

	var opts []qop.Option
	if tasksProvider != "" {
		opts = append(opts, qop.WithProvider(tasksProvider))
	}
	if tasksDevice != "" {
		opts = append(opts, qop.WithDevice(tasksDevice))
	}
	if tasksToken != "" {
		opts = append(opts, qop.WithToken(tasksToken))
	}
	if len(filters) > 0 {
		opts = append(opts, qop.WithParams(filters))
	}

	tasks, err := qop.ListTasks(ctx, opts...)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(tasks)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TASK\tDEVICE")
	for _, t := range tasks {
		device := ""
		if d, ok := t.Device(); ok {
			device = d.String()
		}
		fmt.Fprintf(w, "%s\t%s\n", t.ID(), device)
	}
	w.Flush()
	return nil
}
