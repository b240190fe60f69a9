package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/ui"
)

var tokenReloadNoPersist bool

var tokenReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload tokens from the credential store",
	Long: `Reload tokens from the credential store and merge them under the
in-memory cache. Tokens set during this session win over stored ones.`,
	RunE: runTokenReload,
}

func init() {
	tokenReloadCmd.Flags().BoolVar(&tokenReloadNoPersist, "no-persist", false, "do not write the merged cache back to the store")
	tokenCmd.AddCommand(tokenReloadCmd)
}

func runTokenReload(cmd *cobra.Command, args []string) error {
	all, err := qop.ReloadTokens(qop.WithPersist(!tokenReloadNoPersist))
	if err != nil {
		return err
	}

	if jsonOut {
		masked := make(map[string]string, len(all))
		for k, v := range all {
			masked[k] = ui.Mask(v)
		}
		return printJSON(masked)
	}

	fmt.Printf("%s reloaded %d token(s)\n", ui.Green("✓"), len(all))
	return nil
}
