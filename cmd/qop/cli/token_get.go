package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/ui"
)

var (
	tokenGetProvider string
	tokenGetDevice   string
	tokenGetReveal   bool
)

var tokenGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the token stored for a scope",
	Long: `Show the token stored for a provider, or for one device with
--device. The token is masked unless --reveal is given.`,
	RunE: runTokenGet,
}

func init() {
	tokenCmd.AddCommand(tokenGetCmd)
	tokenGetCmd.Flags().StringVarP(&tokenGetProvider, "provider", "p", "", "provider scope (default: session default)")
	tokenGetCmd.Flags().StringVarP(&tokenGetDevice, "device", "d", "", "device scope instead of provider scope")
	tokenGetCmd.Flags().BoolVar(&tokenGetReveal, "reveal", false, "print the raw token")
}

func runTokenGet(cmd *cobra.Command, args []string) error {
	var opts []qop.Option
	if tokenGetProvider != "" {
		opts = append(opts, qop.WithProvider(tokenGetProvider))
	}
	if tokenGetDevice != "" {
		opts = append(opts, qop.WithDevice(tokenGetDevice))
	}

	secret, err := qop.GetToken(opts...)
	if err != nil {
		return err
	}

	key, err := tokenScopeKey(tokenGetProvider, tokenGetDevice)
	if err != nil {
		return err
	}

	if secret == "" {
		return fmt.Errorf("no token stored for %s", key)
	}

	display := ui.Mask(secret)
	if tokenGetReveal {
		display = secret
	}

	if jsonOut {
		return printJSON(map[string]string{"key": key, "token": display})
	}
	fmt.Println(display)
	return nil
}
