package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qop-dev/qop"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List known providers",
	Long: `List all providers the dispatch layer knows about.

A provider is dispatchable only when a backend for it is registered in
this build; the others can still be named in device references and token
scopes.`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

type providerInfo struct {
	Name        string `json:"provider"`
	Registered  bool   `json:"registered"`
	Default     bool   `json:"default"`
	Description string `json:"description,omitempty"`
}

func runProviders(cmd *cobra.Command, args []string) error {
	def := qop.DefaultProvider().Name()

	names := qop.ListProviders()
	infos := make([]providerInfo, 0, len(names))
	for _, name := range names {
		info := providerInfo{Name: name, Default: name == def}
		if b, ok := qop.Lookup(qop.MustProvider(name)); ok {
			info.Registered = true
			if d, ok := b.(qop.Describer); ok {
				info.Description = d.Description()
			}
		}
		infos = append(infos, info)
	}

	if jsonOut {
		return printJSON(infos)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tREGISTERED\tDEFAULT\tDESCRIPTION")
	for _, info := range infos {
		registered := "no"
		if info.Registered {
			registered = "yes"
		}
		def := ""
		if info.Default {
			def = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Name, registered, def, info.Description)
	}
	w.Flush()
	return nil
}
