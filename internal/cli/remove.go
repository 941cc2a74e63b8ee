package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/store"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>...",
	Aliases: []string{"rm"},
	Short:   "Stop tracking tools",
	Long:    "Removes tools from the inventory and from any bundle membership. Nothing is uninstalled from the system.",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		for _, name := range args {
			if err := st.RemoveTool(name); err != nil {
				return err
			}
			fmt.Printf("removed %s\n", name)
		}
		return nil
	},
}
