// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "contentdeck",
	Short: "ContentDeck is the access-control service for the content platform",
	Long: `ContentDeck is the access-control service for the content platform.
It decides whether a user may perform an action, optionally narrowed to a
project, environment, content schema, or content lifecycle status, and manages
the roles, permissions, and access rules those decisions are based on.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
