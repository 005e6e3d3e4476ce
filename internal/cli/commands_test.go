package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findSubcommand(t *testing.T, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("subcommand %q not registered", name)
	return nil
}

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "sysmon", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage, "errors are formatted by Execute, not cobra usage dumps")
	assert.True(t, rootCmd.SilenceErrors)
	assert.NotNil(t, rootCmd.RunE, "bare 'sysmon' should start the dashboard")
}

func TestRootCommandSubcommands(t *testing.T) {
	for _, name := range []string{"monitor", "snapshot", "init", "doctor", "version"} {
		findSubcommand(t, name)
	}
}

func TestRootCommandPersistentFlags(t *testing.T) {
	configFlag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "string", configFlag.Value.Type())

	verbose := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func TestDashboardFlagsOnRootAndMonitor(t *testing.T) {
	monitor := findSubcommand(t, "monitor")

	for _, name := range []string{"cloudwatch", "region", "namespace", "interval"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "root should accept --%s", name)
		assert.NotNil(t, monitor.Flags().Lookup(name), "monitor should accept --%s", name)
	}
}

func TestSnapshotCommandFlags(t *testing.T) {
	snapshot := findSubcommand(t, "snapshot")

	pretty := snapshot.Flags().Lookup("pretty")
	require.NotNil(t, pretty)
	assert.Equal(t, "bool", pretty.Value.Type())
	assert.Equal(t, "false", pretty.DefValue)
}

func TestInitCommandFlags(t *testing.T) {
	initC := findSubcommand(t, "init")

	force := initC.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "f", force.Shorthand)
}
