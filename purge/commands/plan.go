package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beesaferoot/gorm-purge/internal/config"
	"github.com/beesaferoot/gorm-purge/purge"
)

func PlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan [user-id]",
		Short: "Show what purge would delete without deleting anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				plan := purge.DefaultPlan()
				fmt.Fprintf(out, "%-4s  %-22s  %s\n", "Step", "Collection", "Predicate")
				for _, step := range plan {
					fmt.Fprintf(out, "%-4d  %-22s  %s\n", step.Number, step.Collection, step.Template)
				}
				fmt.Fprintf(out, "%-4d  %-22s  %s\n", plan.RevocationStep(), "identity", "revoke :user")
				return nil
			}

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

			log := newLogger(cfg)
			defer log.Sync()

			// The dry run never reaches the identity provider.
			orchestrator := purge.NewOrchestrator(s, nil, purge.WithLogger(log), purge.WithProgress(out))
			report, err := orchestrator.DryRun(cmd.Context(), userID)
			if err != nil {
				printFailure(cmd.ErrOrStderr(), report, err)
				return err
			}

			fmt.Fprintf(out, "%d row(s) would be removed\n", report.Rows())
			return nil
		},
	}
}
