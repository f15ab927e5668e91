package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retailscope/retailscope/internal/config"
)

// configCmd prints or writes the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, ${VAR} expansion and RS_*
overrides are applied. With --write the result is saved to a file instead.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().String("write", "", "write the configuration to this path")
	configCmd.Flags().Bool("defaults", false, "ignore the config file and use built-in defaults")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if defaults, _ := cmd.Flags().GetBool("defaults"); !defaults {
		loaded, err := loadOptionalConfig()
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if path, _ := cmd.Flags().GetString("write"); path != "" {
		if config.Exists(path) {
			return fmt.Errorf("refusing to overwrite %s", path)
		}
		if err := config.Write(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
