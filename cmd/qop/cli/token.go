package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/ui"
)

var (
	tokenSetProvider  string
	tokenSetDevice    string
	tokenSetNoPersist bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage access tokens",
	Long: `Manage the access tokens used to authenticate against providers.

Tokens are scoped to a provider ("tencent::") or to one device
("tencent::20xmon"). A device-scoped token is consulted only for calls
addressed to that device; there is no fallback to the provider-level
token.`,
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an access token",
	Long: `Store an access token for a provider, or for one device with
--device. The token is prompted for without echo (or read from stdin when
piped) and written to the persisted store unless --no-persist is given.

Examples:
  qop token set --provider tencent
  qop token set --device tencent::20xmon
  echo -n "$TOKEN" | qop token set -p tencent`,
	RunE: runTokenSet,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenSetCmd)
	tokenSetCmd.Flags().StringVarP(&tokenSetProvider, "provider", "p", "", "provider scope (default: session default)")
	tokenSetCmd.Flags().StringVarP(&tokenSetDevice, "device", "d", "", "device scope instead of provider scope")
	tokenSetCmd.Flags().BoolVar(&tokenSetNoPersist, "no-persist", false, "keep the token in memory only")
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	secret, err := readSecret("Token: ")
	if err != nil {
		return err
	}
	if secret == "" {
		return fmt.Errorf("empty token")
	}

	opts := []qop.Option{qop.WithPersist(!tokenSetNoPersist)}
	if tokenSetProvider != "" {
		opts = append(opts, qop.WithProvider(tokenSetProvider))
	}
	if tokenSetDevice != "" {
		opts = append(opts, qop.WithDevice(tokenSetDevice))
	}

	if _, err := qop.SetToken(secret, opts...); err != nil {
		return err
	}

	key, err := tokenScopeKey(tokenSetProvider, tokenSetDevice)
	if err != nil {
		return err
	}
	fmt.Printf("%s token stored for %s\n", ui.OKTag(), ui.Bold(key))
	return nil
}

// tokenScopeKey reports the credential key the given flags resolve to,
// mirroring the scoping SetToken and GetToken apply.
func tokenScopeKey(provider, device string) (string, error) {
	if device != "" {
		var prov any
		if provider != "" {
			prov = provider
		}
		dev, err := qop.ResolveDevice(device, prov)
		if err != nil {
			return "", err
		}
		return dev.TokenKey(), nil
	}
	var ref any
	if provider != "" {
		ref = provider
	}
	p, err := qop.ResolveProvider(ref)
	if err != nil {
		return "", err
	}
	return p.TokenKey(), nil
}
