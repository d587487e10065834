package cmd

import (
	"context"

	"subra-settlement/internal/app"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one reconciliation pass over unsettled purchases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := app.New(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Reconciler.Timeout)
		defer cancel()

		summary, err := a.Reconciler.ReconcileOnce(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, summary)
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
