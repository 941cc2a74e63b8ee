package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "hoards",
	Short: "hoards – local CLI tool inventory",
	Long:  "hoards tracks the CLI tools installed on this machine, their versions and update policies, with an interactive console as the default entry point.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default action: launch the TUI
		return app.Start()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
