package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrisbataille/hoards/internal/config"
	"github.com/chrisbataille/hoards/internal/store"
)

func init() { rootCmd.AddCommand(configCmd) }

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Initialize and show the config location",
	Long:  "Creates the hoards config directory, writes the default config when missing, and prints where everything lives.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		path, _ := config.Path()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !fileExists(path) {
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("✓ created %s\n", path)
		} else {
			fmt.Printf("• keeping %s\n", path)
		}

		st, err := store.Open()
		if err != nil {
			return err
		}
		fmt.Printf("\nconfig dir: %s\nstore dir:  %s\ntheme:      %s\n", dir, st.Dir(), cfg.Theme)
		if cfg.GlobalPolicy != nil {
			fmt.Printf("global policy: %s\n", *cfg.GlobalPolicy)
		}
		for src, p := range cfg.SourcePolicies {
			fmt.Printf("%s policy: %s\n", src, p)
		}
		return nil
	},
}

func fileExists(path string) bool {
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return true
	}
	return false
}
