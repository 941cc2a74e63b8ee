package cli

import (
	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/store"
)

func init() {
	rootCmd.AddCommand(usedCmd)
}

// usedCmd is meant to be wired into shell hooks so the usage sparklines in
// the console reflect real activity.
var usedCmd = &cobra.Command{
	Use:    "used <name>",
	Short:  "Record one use of a tool",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open()
		if err != nil {
			return err
		}
		return st.Touch(args[0])
	},
}
