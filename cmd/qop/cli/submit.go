package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/ui"
)

var (
	submitProvider string
	submitDevice   string
	submitToken    string
	submitShots    int
	submitSource   string
	submitFile     string
	submitParams   []string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a circuit to a device",
	Long: `Submit a circuit to the explicit or default device and print the
task handle.

The circuit source is passed to the provider verbatim; qop does not
interpret it.

Examples:
  qop submit --source "$(cat bell.qasm)"
  qop submit --file bell.qasm --device tencent::20xmon --shots 8192
  qop submit --file bell.qasm -d local::default --param priority=low`,
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&submitProvider, "provider", "p", "", "provider of the target device")
	submitCmd.Flags().StringVarP(&submitDevice, "device", "d", "", "target device (default: session default)")
	submitCmd.Flags().StringVar(&submitToken, "token", "", "access token for this call only")
	submitCmd.Flags().IntVar(&submitShots, "shots", -1, "measurement shots (default: provider default)")
	submitCmd.Flags().StringVar(&submitSource, "source", "", "circuit source text")
	submitCmd.Flags().StringVar(&submitFile, "file", "", "read circuit source from file")
	submitCmd.Flags().StringArrayVar(&submitParams, "param", nil, "extra provider-specific field (KEY=VALUE, repeatable)")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	source := submitSource
	if submitFile != "" {
		data, err := os.ReadFile(submitFile)
		if err != nil {
			return fmt.Errorf("reading circuit file: %w", err)
		}
		source = string(data)
	}
	if source == "" {
		return fmt.Errorf("a circuit source is required: pass --source or --file")
	}

	params, err := parseParamFlags(submitParams)
	if err != nil {
		return err
	}

	opts := []qop.Option{qop.WithSource(source)}
	if submitProvider != "" {
		opts = append(opts, qop.WithProvider(submitProvider))
	}
	if submitDevice != "" {
		opts = append(opts, qop.WithDevice(submitDevice))
	}
	if submitToken != "" {
		opts = append(opts, qop.WithToken(submitToken))
	}
	if submitShots >= 0 {
		opts = append(opts, qop.WithShots(submitShots))
	}
	if len(params) > 0 {
		opts = append(opts, qop.WithParams(params))
	}

	task, err := qop.SubmitTask(ctx, opts...)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(task)
	}
	fmt.Printf("%s submitted %s\n", ui.OKTag(), ui.Bold(task.String()))
	return nil
}
