package commands

import "github.com/spf13/cobra"

// RootCmd builds the gorm-purge command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gorm-purge",
		Short:         "Erase a user account and all of its dependent data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		PurgeCmd(),
		PlanCmd(),
		ResolveCmd(),
		SchemaCmd(),
	)

	return rootCmd
}
