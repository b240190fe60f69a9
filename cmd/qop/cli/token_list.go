package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/ui"
)

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored token scopes",
	Long:  `List every stored credential key with its masked token.`,
	RunE:  runTokenList,
}

func init() {
	tokenCmd.AddCommand(tokenListCmd)
}

func runTokenList(cmd *cobra.Command, args []string) error {
	all, err := qop.Tokens()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if jsonOut {
		masked := make(map[string]string, len(all))
		for _, k := range keys {
			masked[k] = ui.Mask(all[k])
		}
		return printJSON(masked)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEY\tTOKEN")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, ui.Mask(all[k]))
	}
	w.Flush()
	return nil
}
