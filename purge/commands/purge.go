package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-purge/internal/config"
	"github.com/beesaferoot/gorm-purge/internal/lock"
	"github.com/beesaferoot/gorm-purge/purge"
	"github.com/beesaferoot/gorm-purge/purge/identity"
)

func PurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge [user-id]",
		Short: "Erase a user, everything depending on it, and its identity account",
		Long: `Deletes every row that references the user directly or through its properties
and tenants, children before parents, then deletes the account from the identity
provider. Re-running after a failure is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]
			noTx, _ := cmd.Flags().GetBool("no-transaction")

			cfg, err := getConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.ValidateUserID(userID); err != nil {
				return err
			}

			userLock, err := lock.Acquire(cfg.Purge.LockDir, userID)
			if err != nil {
				return err
			}
			defer userLock.Release()

			idp, err := identity.NewClient(cfg.Identity.URL, cfg.Identity.ServiceKey, cfg.Identity.Timeout)
			if err != nil {
				return &purge.ConfigurationError{Cause: err}
			}

			s, closeDB, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			log := newLogger(cfg)
			defer log.Sync()

			orchestrator := purge.NewOrchestrator(s, idp,
				purge.WithLogger(log),
				purge.WithProgress(cmd.OutOrStdout()),
				purge.WithTransactions(cfg.Purge.Transactional && !noTx),
			)

			report, err := orchestrator.Run(cmd.Context(), userID)
			if err != nil {
				printFailure(cmd.ErrOrStderr(), report, err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User %s erased: %d row(s) removed\n", userID, report.Rows())
			return nil
		},
	}

	cmd.Flags().Bool("no-transaction", false, "Run steps one by one even if the database supports transactions")

	return cmd
}
