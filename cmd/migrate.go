package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/goldrec/goldrec/internal/iodb"
	"github.com/goldrec/goldrec/internal/ioschema"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Update the customer mart schema",
		Long: `Update the goldrec customer mart schema to the latest models.

Migration is additive and idempotent: existing data is kept, missing
tables, columns and indexes are added.

Examples:
  goldrec migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate()
		},
	}

	return migrateCmd
}

func runMigrate() error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	sm := ioschema.NewManager(op)

	gn.Info("Migrating schema using GORM AutoMigrate...")
	if err := sm.Migrate(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Mart schema migration complete!")
	return nil
}
