package cli

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(bundleCmd)
}

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Manage tool bundles",
	Long:  "Bundles group related tools under a name and an optional shared update policy. A bundle references tools; it never owns them.",
}
