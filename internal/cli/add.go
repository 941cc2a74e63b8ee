package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/store"
)

var (
	addSource      string
	addDescription string
	addCategory    string
	addBinary      string
	addInstallCmd  string
)

func init() {
	addCmd.Flags().StringVarP(&addSource, "source", "s", "manual", "package source (cargo, apt, snap, flatpak, npm, pip, brew, manual)")
	addCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "short description")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category tag")
	addCmd.Flags().StringVarP(&addBinary, "binary", "b", "", "binary name when it differs from the tool name")
	addCmd.Flags().StringVar(&addInstallCmd, "install-cmd", "", "custom install command overriding the source default")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Track a new tool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := inventory.ParseSource(addSource)
		if src == inventory.SourceUnknown {
			return fmt.Errorf("unknown source %q", addSource)
		}
		st, err := store.Open()
		if err != nil {
			return err
		}
		t := inventory.Tool{
			Name:           args[0],
			Description:    addDescription,
			Category:       addCategory,
			Source:         src,
			Binary:         addBinary,
			InstallCommand: addInstallCmd,
		}
		if err := st.AddTool(t); err != nil {
			return err
		}
		fmt.Printf("tracking %s (%s)\n", t.Name, t.Source)
		return nil
	},
}
