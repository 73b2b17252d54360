package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-purge/purge"
)

func SchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the rental collections in the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateStore(); err != nil {
				return &purge.ConfigurationError{Cause: err}
			}

			s, closeDB, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := s.AutoMigrate(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Collections created successfully")
			return nil
		},
	}
}
