package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/policy"
	"github.com/chrisbataille/hoards/internal/store"
)

var (
	bundleNewDescription string
	bundleNewPolicy      string
)

func init() {
	bundleNewCmd.Flags().StringVarP(&bundleNewDescription, "desc", "d", "", "short description")
	bundleNewCmd.Flags().StringVarP(&bundleNewPolicy, "policy", "p", "", "shared update policy (latest, stable, pinned)")
	bundleCmd.AddCommand(bundleNewCmd)
}

var bundleNewCmd = &cobra.Command{
	Use:   "new <name> [tool]...",
	Short: "Create a bundle",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b := inventory.Bundle{
			Name:        args[0],
			Description: bundleNewDescription,
			Tools:       args[1:],
		}
		if bundleNewPolicy != "" {
			p, err := policy.Parse(bundleNewPolicy)
			if err != nil {
				return err
			}
			b.Policy = &p
		}
		st, err := store.Open()
		if err != nil {
			return err
		}
		if err := st.AddBundle(b); err != nil {
			return err
		}
		fmt.Printf("created bundle %s (%d tools)\n", b.Name, len(b.Tools))
		return nil
	},
}
