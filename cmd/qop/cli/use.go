package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
	"github.com/qop-dev/qop/internal/config"
	"github.com/qop-dev/qop/internal/ui"
)

var useCmd = &cobra.Command{
	Use:   "use [provider-or-device]",
	Short: "Set the default provider or device",
	Long: `Set the process-wide default provider or device and persist it to the
global config file.

A bare name selects a provider. A qualified name of the form
provider::device selects a device.

Examples:
  qop use                       # show current defaults
  qop use local                 # default provider
  qop use tencent::simulator:tc # default device`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return showDefaults()
	}

	cfg, err := config.LoadGlobal()
	if err != nil {
		return err
	}

	ref := args[0]
	if prov, perr := qop.ParseProvider(ref); perr == nil {
		if _, err := qop.SetProvider(prov); err != nil {
			return err
		}
		cfg.Provider = prov.Name()
		if err := config.SaveGlobal(cfg); err != nil {
			return err
		}
		fmt.Printf("%s default provider set to %s\n", ui.Green("✓"), ui.Bold(prov.Name()))
		return nil
	}

	dev, derr := qop.ParseDevice(ref, qop.Provider{})
	if derr != nil {
		return fmt.Errorf("not a provider or device: %q", ref)
	}
	if _, err := qop.SetDevice(dev); err != nil {
		return err
	}
	cfg.Device = dev.String()
	if err := config.SaveGlobal(cfg); err != nil {
		return err
	}
	fmt.Printf("%s default device set to %s\n", ui.Green("✓"), ui.Bold(dev.String()))
	return nil
}

func showDefaults() error {
	prov := qop.DefaultProvider()
	dev := qop.DefaultDevice()

	if jsonOut {
		return printJSON(map[string]string{
			"provider": prov.Name(),
			"device":   dev.String(),
		})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "provider:\t%s\n", prov.Name())
	fmt.Fprintf(w, "device:\t%s\n", dev.String())
	w.Flush()
	return nil
}
