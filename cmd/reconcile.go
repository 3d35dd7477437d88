package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/internal/iodb"
	"github.com/goldrec/goldrec/internal/ioreconcile"
	"github.com/goldrec/goldrec/pkg/config"
	"github.com/spf13/cobra"
)

// getReconcileCmd returns the reconcile command.
func getReconcileCmd() *cobra.Command {
	reconcileCmd := &cobra.Command{
		Use:   "reconcile <batch.sqlite>",
		Short: "Verify the mart matches a landing batch",
		Long: `Verify that the published mart matches a landing batch.

The expected identity count is recomputed from the batch and compared
with the number of published golden records. A mismatch exits with an
error so the check can drive alerting.

Examples:
  goldrec reconcile exports/2023-07-01.sqlite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(args[0])
		},
	}

	return reconcileCmd
}

func runReconcile(batchPath string) error {
	ctx := context.Background()

	cfg.Update([]config.Option{config.OptLandingPath(batchPath)})

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	rec := ioreconcile.NewReconciler(cfg, op)
	if err := rec.Reconcile(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}
