package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "goldrec", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.Contains(t, rootCmd.Long, "golden-record")
	assert.NotNil(t, rootCmd.PersistentPreRunE)
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"create", "migrate", "run", "reconcile"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestCreateCmdFlags(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "create", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
}

func TestRunCmdFlags(t *testing.T) {
	cmd := getRunCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "run <batch.sqlite>", cmd.Use)
	assert.NotNil(t, cmd.Args)
	assert.NotNil(t, cmd.RunE)

	jobsFlag := cmd.Flags().Lookup("jobs")
	require.NotNil(t, jobsFlag)
	assert.Equal(t, "j", jobsFlag.Shorthand)
}

func TestMigrateCmd(t *testing.T) {
	cmd := getMigrateCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "migrate", cmd.Use)
	assert.Contains(t, cmd.Long, "idempotent")
}

func TestReconcileCmd(t *testing.T) {
	cmd := getReconcileCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "reconcile <batch.sqlite>", cmd.Use)
	assert.Contains(t, cmd.Long, "identity count")
}
