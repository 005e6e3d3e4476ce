// Package cli wires the sysmon commands: the dashboard itself, a
// one-shot JSON snapshot, interactive config setup, environment
// diagnostics, and version info.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sysmonitor/sysmon/internal/logger"
)

// Persistent flags shared by every command.
var (
	configFlag  string
	verboseFlag bool
)

// rootCmd is the base command. Bare `sysmon` runs the dashboard, same
// as `sysmon monitor`.
var rootCmd = &cobra.Command{
	Use:   "sysmon",
	Short: "Live terminal dashboard for host metrics",
	Long: `sysmon samples CPU, memory, disk, network, and process metrics twice a
second and renders them as a full-screen terminal dashboard. A subset of
the metrics can be exported to CloudWatch about once a minute.

Run it bare to start monitoring:

  sysmon
  sysmon --cloudwatch --region us-east-1
  sysmon snapshot --pretty`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verboseFlag)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return monitorCommand()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI. Structured errors already carry their own
// formatting and suggestions, so they print as-is.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
