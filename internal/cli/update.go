package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/policy"
	"github.com/chrisbataille/hoards/internal/store"
	"github.com/chrisbataille/hoards/internal/system"
)

var updateForce bool

func init() {
	updateCmd.Flags().BoolVarP(&updateForce, "force", "f", false, "update even when the policy holds the version back")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [name]...",
	Short: "Update installed tools",
	Long:  "Updates the named tools, or every installed tool with a pending update. Tools pinned or held back by a stable policy are skipped unless --force is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		snap, err := st.LoadSnapshot()
		if err != nil {
			return err
		}

		var targets []inventory.Tool
		if len(args) > 0 {
			for _, name := range args {
				t, ok := snap.Tool(name)
				if !ok {
					return fmt.Errorf("unknown tool %q", name)
				}
				targets = append(targets, t)
			}
		} else {
			for _, t := range snap.Tools {
				if t.Installed {
					targets = append(targets, t)
				}
			}
		}

		runner := system.NewRunner()
		for _, t := range targets {
			item := inventory.Decorate(snap, t)
			switch item.Decision {
			case policy.DecisionUpdate:
			case policy.DecisionSkipMajor, policy.DecisionPinned:
				if !updateForce {
					fmt.Printf("%s held back (%s, policy %s)\n", t.Name, item.Decision, item.Policy)
					continue
				}
			default:
				continue
			}
			fmt.Printf("updating %s %s → %s...\n", t.Name, t.InstalledVersion, t.AvailableVersion)
			delta, err := runner.Update(cmd.Context(), t)
			if err != nil {
				fmt.Printf("  × %v\n", err)
				continue
			}
			if err := persistDelta(st, inventory.MutationUpdate, delta); err != nil {
				return err
			}
			fmt.Printf("  ✓ %s\n", orLatest(delta.InstalledVersion))
		}
		return nil
	},
}
