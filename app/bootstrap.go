package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentdeck/contentdeck/internal/access"
	"github.com/contentdeck/contentdeck/internal/config"
	"github.com/contentdeck/contentdeck/internal/daemon"
)

func init() { //nolint: gochecknoinits
	bootstrapCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(bootstrapCmd)
}

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap <user-id>",
	Short: "Grant the first operator unrestricted access",
	Long: `Bootstrap grants the given user the reserved platform-admin role with a
global access rule. It only succeeds while no access rule exists anywhere in
the system; once any rule exists the system is bootstrapped permanently.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := config.ReadConfig(configPath)
		if err != nil {
			return err
		}

		db, err := daemon.OpenDB(&cfg)
		if err != nil {
			return err
		}

		svc := access.NewService(db)

		if err := svc.BootstrapFirstUser(args[0]); err != nil {
			if errors.Is(err, access.ErrAlreadyBootstrapped) {
				fmt.Println("system is already bootstrapped; nothing to do")
				return nil
			}

			return err
		}

		fmt.Printf("user %s now holds the %s role globally\n", args[0], access.ReservedAdminRole)

		return nil
	},
}
