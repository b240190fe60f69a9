// Package cli implements the qop command-line interface using Cobra.
// It provides commands for inspecting providers and devices, managing
// access tokens, and submitting and tracking tasks.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/config"
	"github.com/qop-dev/qop/internal/log"
	"github.com/qop-dev/qop/local"
	"github.com/qop-dev/qop/token"
)

var (
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "qop",
	Short: "qop - dispatch quantum workloads across cloud and local providers",
	Long: `qop routes quantum-computing workloads to heterogeneous providers
through one uniform interface.

Devices are addressed as provider::device (e.g. tencent::simulator:tc);
tasks as device~~taskid. Arguments omitted on the command line fall back
to the session defaults, configurable via 'qop use' or ~/.qop/config.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Init(log.Options{
			Verbose:    verbose,
			JSONFormat: jsonOut,
		})

		cfg, err := config.LoadGlobal()
		if err != nil {
			return err
		}
		return applyConfig(cfg)
	},
}

// applyConfig installs the configured token keeper, session defaults, and
// local ledger location.
func applyConfig(cfg *config.GlobalConfig) error {
	switch cfg.Tokens.Keeper {
	case "", "file":
		path := cfg.Tokens.Path
		if path == "" {
			path = token.DefaultAuthPath()
		}
		qop.SetTokenKeeper(&token.FileKeeper{Path: path})
	case "keyring":
		qop.SetTokenKeeper(&token.KeyringKeeper{})
	default:
		return fmt.Errorf("unknown token keeper %q (want file or keyring)", cfg.Tokens.Keeper)
	}

	if cfg.Provider != "" {
		if _, err := qop.SetProvider(cfg.Provider); err != nil {
			return fmt.Errorf("configured provider: %w", err)
		}
	}
	if cfg.Device != "" {
		if _, err := qop.SetDevice(cfg.Device); err != nil {
			return fmt.Errorf("configured device: %w", err)
		}
	}

	if cfg.LocalDB != "" {
		qop.Register(local.NewAt(cfg.LocalDB))
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
}
