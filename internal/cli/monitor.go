package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/sysmonitor/sysmon/internal/config"
	"github.com/sysmonitor/sysmon/internal/dashboard"
	"github.com/sysmonitor/sysmon/internal/errors"
	"github.com/sysmonitor/sysmon/internal/export"
	"github.com/sysmonitor/sysmon/internal/logger"
	"github.com/sysmonitor/sysmon/internal/metrics"
	"github.com/sysmonitor/sysmon/internal/ui"
)

// monitorCommand starts the dashboard and blocks until it exits.
func monitorCommand() error {
	cfg, err := loadMonitorConfig()
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrRender,
			"sysmon needs an interactive terminal",
			"Run it directly in a terminal, or use 'sysmon snapshot' for scripted output.")
	}

	log := logger.Default()
	ctx := context.Background()

	exporter, status := buildExporter(ctx, cfg, log)
	fmt.Println(status)

	collector := metrics.NewCollector(metrics.NewSystemProvider(), cfg.TopProcesses, log)
	model := dashboard.New(collector, exporter, cfg.Interval, dashboard.Options{
		Hostname:      readHostname(ctx),
		ExportEnabled: exporter.Enabled(),
	}, log)

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Forward termination signals into the model; the loop shuts down
	// at the top of its next tick.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			p.Send(dashboard.StopRequest{})
		}
	}()

	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Dashboard terminated unexpectedly",
			"Check that the terminal supports the alternate screen, or try 'sysmon snapshot'.")
	}

	out := termenv.NewOutput(os.Stdout)
	fmt.Println(out.String("Monitoring stopped.").Foreground(termenv.ANSIGreen))
	return nil
}

// loadConfig loads the config file honoring --config, falling back to
// defaults when no file exists.
func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.Load(configFlag)
	}
	return config.LoadOrDefault()
}

// loadMonitorConfig layers the dashboard flags over the file config.
// Flags win; the merged result is re-validated so flag input faces the
// same floor checks as file values.
func loadMonitorConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if monitorCloudWatchFlag {
		cfg.CloudWatch.Enabled = true
	}
	if monitorRegionFlag != "" {
		cfg.CloudWatch.Region = monitorRegionFlag
	}
	if monitorNamespaceFlag != "" {
		cfg.CloudWatch.Namespace = monitorNamespaceFlag
	}
	if monitorIntervalFlag != "" {
		parsed, err := time.ParseDuration(monitorIntervalFlag)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", monitorIntervalFlag),
				"Use a duration like 500ms, 1s, or 2s.")
		}
		cfg.Interval = parsed
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildExporter constructs the CloudWatch exporter plus a one-line
// status shown before the dashboard takes the screen. Unresolvable
// credentials disable export for the whole run; nothing retries later.
func buildExporter(ctx context.Context, cfg *config.Config, log logger.Logger) (*export.Exporter, string) {
	if !cfg.CloudWatch.Enabled {
		return export.Disabled(),
			ui.Mutedf("CloudWatch export disabled (enable with --cloudwatch or in %s)", config.ConfigFileName)
	}

	sink, err := export.NewCloudWatchSink(ctx, cfg.CloudWatch.Region, cfg.CloudWatch.Namespace)
	if err != nil {
		log.Error("CloudWatch export disabled: %v", err)
		return export.Disabled(),
			ui.Warnf("CloudWatch export disabled: credentials unavailable (run 'aws configure' to enable)")
	}

	return export.New(sink, export.EveryFromInterval(cfg.Interval), log),
		ui.Infof("CloudWatch export enabled (region %s, namespace %s)",
			cfg.CloudWatch.Region, cfg.CloudWatch.Namespace)
}

// readHostname is best-effort; the header just goes without a hostname
// when the platform cannot report one.
func readHostname(ctx context.Context) string {
	info, err := metrics.ReadHostInfo(ctx)
	if err != nil || info.Hostname == "" {
		name, _ := os.Hostname()
		return name
	}
	return info.Hostname
}
