package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
)

var (
	propertiesProvider string
	propertiesDevice   string
	propertiesToken    string
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Show calibration and topology properties of a device",
	RunE:  runProperties,
}

func init() {
	rootCmd.AddCommand(propertiesCmd)
	propertiesCmd.Flags().StringVarP(&propertiesProvider, "provider", "p", "", "provider of the device")
	propertiesCmd.Flags().StringVarP(&propertiesDevice, "device", "d", "", "device to query (default: session default)")
	propertiesCmd.Flags().StringVar(&propertiesToken, "token", "", "access token for this call only")
}

func runProperties(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var opts []qop.Option
	if propertiesProvider != "" {
		opts = append(opts, qop.WithProvider(propertiesProvider))
	}
	if propertiesDevice != "" {
		opts = append(opts, qop.WithDevice(propertiesDevice))
	}
	if propertiesToken != "" {
		opts = append(opts, qop.WithToken(propertiesToken))
	}

	props, err := qop.ListProperties(ctx, opts...)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(props)
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PROPERTY\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%v\n", k, props[k])
	}
	w.Flush()
	return nil
}
