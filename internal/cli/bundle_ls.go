package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/store"
)

func init() {
	bundleCmd.AddCommand(bundleLsCmd)
}

var bundleLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List bundles",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		bundles, err := st.LoadBundles()
		if err != nil {
			return err
		}
		for _, b := range bundles {
			pol := ""
			if b.Policy != nil {
				pol = " [" + b.Policy.String() + "]"
			}
			fmt.Printf("%s%s: %s\n", b.Name, pol, strings.Join(b.Tools, ", "))
		}
		return nil
	},
}
