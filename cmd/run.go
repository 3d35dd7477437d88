package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/internal/iodb"
	"github.com/goldrec/goldrec/internal/iopipeline"
	"github.com/goldrec/goldrec/internal/iorun"
	"github.com/goldrec/goldrec/pkg/config"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var jobs int

	runCmd := &cobra.Command{
		Use:   "run <batch.sqlite>",
		Short: "Process one landing batch into the mart",
		Long: `Process one landing batch into the customer mart.

This command:
  1. Reads the raw customer batch and order aggregates
  2. Normalizes emails, names, phones and dates
  3. Collapses duplicate identities into golden records
  4. Derives RFM and health scores over the whole batch
  5. Atomically replaces the scored customer table

The run is recorded in the pipeline run log whether it succeeds or
fails. A failed run leaves the previously published batch intact.

Examples:
  goldrec run exports/2023-07-01.sqlite
  goldrec run exports/2023-07-01.sqlite --jobs 8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args[0], jobs)
		},
	}

	runCmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"number of concurrent normalization workers")

	return runCmd
}

func runRun(batchPath string, jobs int) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	cfg.Update([]config.Option{config.OptLandingPath(batchPath)})
	if jobs > 0 {
		cfg.Update([]config.Option{config.OptJobsNumber(jobs)})
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	recorder := iorun.NewRecorder(op)
	runner := iopipeline.NewRunner(cfg, op, recorder)

	if err := runner.Run(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return nil
}
