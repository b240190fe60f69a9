package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/ui"
)

var (
	resubmitDevice string
	resubmitToken  string
)

var resubmitCmd = &cobra.Command{
	Use:   "resubmit <task>",
	Short: "Rerun a task under a fresh handle",
	Long: `Rerun a task on the provider that ran it. Not every provider
supports resubmission.`,
	Args: cobra.ExactArgs(1),
	RunE: runResubmit,
}

func init() {
	rootCmd.AddCommand(resubmitCmd)
	resubmitCmd.Flags().StringVarP(&resubmitDevice, "device", "d", "", "device the task ran on")
	resubmitCmd.Flags().StringVar(&resubmitToken, "token", "", "access token for this call only")
}

func runResubmit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var opts []qop.Option
	if resubmitDevice != "" {
		opts = append(opts, qop.WithDevice(resubmitDevice))
	}
	if resubmitToken != "" {
		opts = append(opts, qop.WithToken(resubmitToken))
	}

	task, err := qop.ResubmitTask(ctx, args[0], opts...)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(task)
	}
	fmt.Printf("%s resubmitted as %s\n", ui.OKTag(), ui.Bold(task.String()))
	return nil
}
