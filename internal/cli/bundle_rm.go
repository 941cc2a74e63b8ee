package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/store"
)

func init() {
	bundleCmd.AddCommand(bundleRmCmd)
}

var bundleRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a bundle (its tools stay tracked)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		if err := st.RemoveBundle(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted bundle %s\n", args[0])
		return nil
	},
}
