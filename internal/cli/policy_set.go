package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/config"
	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/policy"
	"github.com/chrisbataille/hoards/internal/store"
)

var (
	policySetSource string
	policySetGlobal bool
)

func init() {
	policySetCmd.Flags().StringVar(&policySetSource, "source", "", "set the default for a package source instead of a tool")
	policySetCmd.Flags().BoolVar(&policySetGlobal, "global", false, "set the global default")
	policyCmd.AddCommand(policySetCmd)
	policyCmd.AddCommand(policyClearCmd)
}

var policySetCmd = &cobra.Command{
	Use:   "set <latest|stable|pinned> [tool]...",
	Short: "Set a policy override or default",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := policy.Parse(args[0])
		if err != nil {
			return err
		}

		switch {
		case policySetGlobal:
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.GlobalPolicy = &p
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("global policy: %s\n", p)
			return nil

		case policySetSource != "":
			src := inventory.ParseSource(policySetSource)
			if src == inventory.SourceUnknown {
				return fmt.Errorf("unknown source %q", policySetSource)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.SourcePolicies == nil {
				cfg.SourcePolicies = make(map[string]policy.Policy)
			}
			cfg.SourcePolicies[src.String()] = p
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("%s default policy: %s\n", src, p)
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("no tool named (or use --global / --source)")
		}
		st, err := store.Open()
		if err != nil {
			return err
		}
		for _, name := range args[1:] {
			pp := p
			if err := st.ApplyMutation(inventory.Mutation{
				Kind:   inventory.MutationSetPolicy,
				Tool:   name,
				Policy: &pp,
			}); err != nil {
				return err
			}
			fmt.Printf("%s policy: %s\n", name, p)
		}
		return nil
	},
}

var policyClearCmd = &cobra.Command{
	Use:   "clear <tool>...",
	Short: "Clear tool policy overrides",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		for _, name := range args {
			if err := st.ApplyMutation(inventory.Mutation{
				Kind: inventory.MutationSetPolicy,
				Tool: name,
			}); err != nil {
				return err
			}
			fmt.Printf("%s policy override cleared\n", name)
		}
		return nil
	},
}
