package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/sysmonitor/sysmon/internal/config"
	"github.com/sysmonitor/sysmon/internal/errors"
	"github.com/sysmonitor/sysmon/internal/export"
	"github.com/sysmonitor/sysmon/internal/ui"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use defaults
}

// Init creates a new .sysmon.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		var overwrite bool

		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Collect configuration values
	enableExport := false
	region := export.DefaultRegion
	namespace := export.DefaultNamespace
	intervalStr := config.MinInterval.String()

	if !opts.NonInteractive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Sampling interval").
					Description("How often to collect metrics (minimum 500ms)").
					Placeholder(config.MinInterval.String()).
					Value(&intervalStr).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return nil
						}
						d, err := time.ParseDuration(strings.TrimSpace(s))
						if err != nil {
							return fmt.Errorf("use a duration like 500ms or 1s")
						}
						if d < config.MinInterval {
							return fmt.Errorf("minimum interval is %s", config.MinInterval)
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Enable CloudWatch export?").
					Description("Publishes CPU, memory, disk, and network metrics every minute").
					Value(&enableExport),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("AWS region").
					Description("Region the metrics are published to").
					Placeholder(export.DefaultRegion).
					Value(&region).
					Validate(func(s string) error {
						if enableExport && strings.TrimSpace(s) == "" {
							return fmt.Errorf("region is required when export is enabled")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("CloudWatch namespace").
					Description("Metrics appear under this namespace in the console").
					Placeholder(export.DefaultNamespace).
					Value(&namespace).
					Validate(func(s string) error {
						if enableExport && strings.TrimSpace(s) == "" {
							return fmt.Errorf("namespace is required when export is enabled")
						}
						return nil
					}),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility, or edit "+config.ConfigFileName+" by hand")
		}
	}

	// Verify credentials before saving an enabled export config
	if enableExport && !opts.NonInteractive {
		fmt.Println()
		probeErr := spinner.New().
			Title("Checking AWS credentials...").
			Output(os.Stderr).
			ActionWithErr(func(ctx context.Context) error {
				_, err := export.NewCloudWatchSink(ctx, region, namespace)
				return err
			}).
			Run()

		if probeErr != nil {
			// Credentials unavailable, but still offer to save config
			var saveAnyway bool
			fmt.Printf("\n%s Credential check failed: %v\n\n", ui.SymbolFail, probeErr)

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Save config anyway? (Export stays off until credentials work)").
						Value(&saveAnyway),
				),
			)

			if formErr := form.Run(); formErr != nil {
				return errors.WrapWithCode(probeErr, errors.ErrExport,
					"CloudWatch credential check failed",
					"Run 'aws configure' and try again")
			}

			if !saveAnyway {
				return errors.WrapWithCode(probeErr, errors.ErrExport,
					"CloudWatch credential check failed",
					"Run 'aws configure' and try again")
			}
		} else {
			fmt.Printf("%s AWS credentials OK\n", ui.SymbolSuccess)
			fmt.Println()
		}
	}

	// Build config
	cfg := config.DefaultConfig()
	if s := strings.TrimSpace(intervalStr); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.Interval = d
		}
	}
	cfg.CloudWatch.Enabled = enableExport
	if s := strings.TrimSpace(region); s != "" {
		cfg.CloudWatch.Region = s
	}
	if s := strings.TrimSpace(namespace); s != "" {
		cfg.CloudWatch.Namespace = s
	}

	content, err := renderConfigFile(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  sysmon              - Start the dashboard")
	fmt.Println("  sysmon snapshot     - Print one sample as JSON")
	fmt.Println("  sysmon --cloudwatch - Turn export on for a single run")

	return nil
}

// configDocument mirrors Config with a human-readable interval for the
// generated YAML.
type configDocument struct {
	Interval     string                  `yaml:"interval"`
	TopProcesses int                     `yaml:"top_processes"`
	CloudWatch   config.CloudWatchConfig `yaml:"cloudwatch"`
}

// renderConfigFile marshals cfg with the standard header comment.
func renderConfigFile(cfg *config.Config) ([]byte, error) {
	doc := configDocument{
		Interval:     cfg.Interval.String(),
		TopProcesses: cfg.TopProcesses,
		CloudWatch:   cfg.CloudWatch,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# sysmon configuration
# Run 'sysmon' to start the dashboard
# Flags and SYSMON_* environment variables override these values

`
	return append([]byte(header), data...), nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(force bool) error {
	return Init(InitOptions{
		Overwrite:      force,
		NonInteractive: !term.IsTerminal(int(os.Stdin.Fd())),
	})
}
