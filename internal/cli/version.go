package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// appVersion is stamped by the release build.
var appVersion = "0.1.0"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print hoards version",
	Run: func(cmd *cobra.Command, args []string) {
		// keep output simple for scripting
		fmt.Println(appVersion)
	},
}
