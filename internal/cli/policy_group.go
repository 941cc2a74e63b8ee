package cli

import "github.com/spf13/cobra"

func init() {
	rootCmd.AddCommand(policyCmd)
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect and set update policies",
	Long:  "A tool's effective policy is resolved in precedence order: tool override, most restrictive bundle policy, source default, global default.",
}
