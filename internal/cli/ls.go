package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/search"
	"github.com/chrisbataille/hoards/internal/store"
)

var (
	lsInstalledOnly bool
	lsFilter        string
)

func init() {
	lsCmd.Flags().BoolVarP(&lsInstalledOnly, "installed", "i", false, "only show installed tools")
	lsCmd.Flags().StringVarP(&lsFilter, "filter", "f", "", "fuzzy-filter by tool name")
	rootCmd.AddCommand(lsCmd)
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List tracked tools",
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
		if lsFilter != "" {
			names := make([]string, len(tools))
			for i, t := range tools {
				names[i] = t.Name
			}
			ranked := make([]inventory.Tool, 0, len(tools))
			for _, sc := range search.Rank(lsFilter, names) {
				ranked = append(ranked, tools[sc.Index])
			}
			tools = ranked
		}
		for _, t := range tools {
			if lsInstalledOnly && !t.Installed {
				continue
			}
			item := inventory.Decorate(snap, t)
			mark := " "
			if t.Installed {
				mark = "✓"
			}
			glyph := item.Decision.Glyph()
			if glyph == "" {
				glyph = " "
			}
			ver := t.InstalledVersion
			if ver == "" {
				ver = "-"
			}
			fmt.Printf("%s %s %-22s %-12s %-8s %s\n", mark, glyph, t.Name, ver, item.Policy, t.Source)
		}
		return nil
	},
}
