package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/store"
)

func init() {
	bundleCmd.AddCommand(bundleAddCmd)
	bundleCmd.AddCommand(bundleRemoveCmd)
}

var bundleAddCmd = &cobra.Command{
	Use:   "add <bundle> <tool>...",
	Short: "Add tools to a bundle",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return bundleMembership(inventory.MutationBundleAdd, args[0], args[1:], "added %s to %s\n")
	},
}

var bundleRemoveCmd = &cobra.Command{
	Use:   "remove <bundle> <tool>...",
	Short: "Remove tools from a bundle",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return bundleMembership(inventory.MutationBundleRemove, args[0], args[1:], "removed %s from %s\n")
	},
}

func bundleMembership(kind inventory.MutationKind, bundle string, tools []string, format string) error {
	st, err := store.Open()
	if err != nil {
		return err
	}
	for _, tool := range tools {
		if err := st.ApplyMutation(inventory.Mutation{Kind: kind, Bundle: bundle, Tool: tool}); err != nil {
			return err
		}
		fmt.Printf(format, tool, bundle)
	}
	return nil
}
