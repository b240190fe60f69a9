package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/ui"
)

var (
	removeDevice string
	removeToken  string
)

var removeCmd = &cobra.Command{
	Use:   "remove <task>",
	Short: "Cancel or delete a task",
	Long: `Cancel or delete a task on its provider. Not every provider
supports removal.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().StringVarP(&removeDevice, "device", "d", "", "device the task ran on")
	removeCmd.Flags().StringVar(&removeToken, "token", "", "access token for this call only")
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var opts []qop.Option
	if removeDevice != "" {
		opts = append(opts, qop.WithDevice(removeDevice))
	}
	if removeToken != "" {
		opts = append(opts, qop.WithToken(removeToken))
	}

	task, err := qop.RemoveTask(ctx, args[0], opts...)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(task)
	}
	fmt.Printf("%s removed %s\n", ui.OKTag(), ui.Bold(task.String()))
	return nil
}
