package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/store"
	"github.com/chrisbataille/hoards/internal/system"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <name>...",
	Short: "Install tracked tools",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		runner := system.NewRunner()
		for i, name := range args {
			t, err := st.RefreshTool(name)
			if err != nil {
				return err
			}
			if t.Installed {
				fmt.Printf("[%d/%d] %s already installed (%s)\n", i+1, len(args), name, t.InstalledVersion)
				continue
			}
			fmt.Printf("[%d/%d] installing %s...\n", i+1, len(args), name)
			delta, err := runner.Install(cmd.Context(), t)
			if err != nil {
				fmt.Printf("  × %v\n", err)
				continue
			}
			if err := persistDelta(st, inventory.MutationInstall, delta); err != nil {
				return err
			}
			fmt.Printf("  ✓ %s\n", orLatest(delta.InstalledVersion))
		}
		return nil
	},
}

func persistDelta(st *store.Store, kind inventory.MutationKind, d inventory.Delta) error {
	return st.ApplyMutation(inventory.Mutation{
		Kind:    kind,
		Tool:    d.Name,
		Version: d.InstalledVersion,
	})
}

func orLatest(v string) string {
	if v == "" {
		return "latest"
	}
	return v
}
