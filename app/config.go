package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentdeck/contentdeck/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")
	configCmd.Flags().BoolVar(&configAsJSON, "json", false, "Dump as JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}

var (
	configAsJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Dump the effective configuration",
		Long: `Config reads the configuration files and the environment override and
prints the effective configuration the service would start with.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if configAsJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&cfg)
			if err != nil {
				return err
			}

			fmt.Print(out)

			return nil
		},
	}
)
