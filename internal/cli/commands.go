package cli

import (
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	monitorCloudWatchFlag bool
	monitorRegionFlag     string
	monitorNamespaceFlag  string
	monitorIntervalFlag   string
	snapshotPrettyFlag    bool
	initForceFlag         bool
)

// monitorCmd starts the live dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Start the live metrics dashboard",
	Long: `Start the full-screen dashboard showing live system metrics.

Samples CPU, memory, disk, network, and process metrics every 500ms and
renders gauges, trend sparklines, and a top-process table. With
--cloudwatch, a subset of the metrics is batched to CloudWatch about
once a minute.

Keyboard shortcuts:
  q / Esc / Ctrl+C  Quit

Examples:
  sysmon monitor
  sysmon monitor --interval 1s
  sysmon monitor --cloudwatch --region eu-west-1 --namespace Fleet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand()
	},
}

// snapshotCmd collects one sample and prints it as JSON
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Collect one sample and print it as JSON",
	Long: `Collect a single sample of every metric domain and print it to stdout
as JSON. Useful in scripts, and for checking what the dashboard would
show without taking over the terminal.

Examples:
  sysmon snapshot
  sysmon snapshot --pretty
  sysmon snapshot | jq .cpu`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(snapshotPrettyFlag)
	},
}

// initCmd creates a new .sysmon.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .sysmon.yaml configuration",
	Long: `Initialize a new sysmon configuration file.

Creates a .sysmon.yaml in the current directory, walking through the
CloudWatch export settings with interactive prompts and optionally
verifying AWS credentials.

Examples:
  sysmon init
  sysmon init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForceFlag)
	},
}

// registerMonitorFlags binds the dashboard flags onto a command. They
// go on both the root command and `monitor` so the bare invocation
// accepts them too.
func registerMonitorFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&monitorCloudWatchFlag, "cloudwatch", false, "export metrics to CloudWatch")
	cmd.Flags().StringVar(&monitorRegionFlag, "region", "", "AWS region for export (default us-east-1)")
	cmd.Flags().StringVar(&monitorNamespaceFlag, "namespace", "", "CloudWatch namespace (default SystemMonitor)")
	cmd.Flags().StringVar(&monitorIntervalFlag, "interval", "", "sampling interval, minimum 500ms (e.g. 500ms, 1s)")
}

func init() {
	registerMonitorFlags(rootCmd)
	registerMonitorFlags(monitorCmd)

	// snapshot command flags
	snapshotCmd.Flags().BoolVar(&snapshotPrettyFlag, "pretty", false, "indent the JSON output")

	// init command flags
	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(initCmd)
}
