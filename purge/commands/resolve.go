package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-purge/internal/config"
	"github.com/beesaferoot/gorm-purge/purge"
)

func ResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [user-id]",
		Short: "List the properties and tenants linked to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			cfg, err := getConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateStore(); err != nil {
				return &purge.ConfigurationError{Cause: err}
			}
			if err := config.ValidateUserID(userID); err != nil {
				return err
			}

			s, closeDB, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			targets, err := purge.NewResolver(s).Resolve(cmd.Context(), userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Properties (%d):\n", len(targets.PropertyIDs))
			for _, id := range targets.PropertyIDs {
				fmt.Fprintf(out, "  %s\n", id)
			}
			fmt.Fprintf(out, "Tenants (%d):\n", len(targets.TenantIDs))
			for _, id := range targets.TenantIDs {
				fmt.Fprintf(out, "  %s\n", id)
			}
			return nil
		},
	}
}
