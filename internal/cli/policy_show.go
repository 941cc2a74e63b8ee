package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/store"
)

func init() {
	policyCmd.AddCommand(policyShowCmd)
}

var policyShowCmd = &cobra.Command{
	Use:   "show [name]...",
	Short: "Show effective policies and where they come from",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		snap, err := st.LoadSnapshot()
		if err != nil {
			return err
		}
		tools := snap.Tools
		if len(args) > 0 {
			tools = make([]inventory.Tool, 0, len(args))
			for _, name := range args {
				t, ok := snap.Tool(name)
				if !ok {
					return fmt.Errorf("unknown tool %q", name)
				}
				tools = append(tools, t)
			}
		}
		for _, t := range tools {
			item := inventory.Decorate(snap, t)
			fmt.Printf("%-22s %-8s (%s)\n", t.Name, item.Policy, item.Prov.Label())
		}
		return nil
	},
}
