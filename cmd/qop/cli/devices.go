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
	devicesProvider string
	devicesToken    string
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices of a provider",
	Long: `List the devices the resolved token may use on a provider.

Without --provider the session default provider is queried.`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
	devicesCmd.Flags().StringVarP(&devicesProvider, "provider", "p", "", "provider to query (default: session default)")
	devicesCmd.Flags().StringVar(&devicesToken, "token", "", "access token for this call only")
}

func runDevices(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var opts []qop.Option
	if devicesProvider != "" {
		opts = append(opts, qop.WithProvider(devicesProvider))
	}
	if devicesToken != "" {
		opts = append(opts, qop.WithToken(devicesToken))
	}

	devices, err := qop.ListDevices(ctx, opts...)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(devices)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tSTATE\tQUBITS")
	for _, d := range devices {
		qubits := ""
		if d.Qubits > 0 {
			qubits = fmt.Sprintf("%d", d.Qubits)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.Device.String(), d.State, qubits)
	}
	w.Flush()
	return nil
}
