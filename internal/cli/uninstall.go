package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/store"
	"github.com/chrisbataille/hoards/internal/system"
)

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <name>...",
	Short: "Uninstall tools without untracking them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		runner := system.NewRunner()
		for _, name := range args {
			t, err := st.RefreshTool(name)
			if err != nil {
				return err
			}
			if !t.Installed {
				fmt.Printf("%s is not installed\n", name)
				continue
			}
			delta, err := runner.Uninstall(cmd.Context(), t)
			if err != nil {
				fmt.Printf("  × %v\n", err)
				continue
			}
			if err := persistDelta(st, inventory.MutationUninstall, delta); err != nil {
				return err
			}
			fmt.Printf("uninstalled %s\n", name)
		}
		return nil
	},
}
