package root

import (
	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "inventory",
	Short:         "Inventory manager CLI",
	Long:          "Command line client for the inventory API: sign up, sign in, and manage the products you own.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}
