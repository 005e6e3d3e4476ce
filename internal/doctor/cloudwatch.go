package doctor

import (
	"context"
	"fmt"

	"github.com/sysmonitor/sysmon/internal/config"
	"github.com/sysmonitor/sysmon/internal/export"
)

// ExportSettingsCheck reports the effective CloudWatch export settings.
type ExportSettingsCheck struct {
	Config *config.Config
}

func (c *ExportSettingsCheck) Name() string     { return "cloudwatch_settings" }
func (c *ExportSettingsCheck) Category() string { return "CLOUDWATCH" }

func (c *ExportSettingsCheck) Run() CheckResult {
	if c.Config == nil || !c.Config.CloudWatch.Enabled {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Export disabled",
		}
	}

	cw := c.Config.CloudWatch
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Export enabled (region %s, namespace %s)", cw.Region, cw.Namespace),
	}
}

// CredentialsCheck resolves AWS credentials the same way the exporter
// does at startup. Probe is swappable for tests.
type CredentialsCheck struct {
	Config *config.Config
	Probe  func(ctx context.Context, region, namespace string) error
}

func (c *CredentialsCheck) Name() string     { return "cloudwatch_credentials" }
func (c *CredentialsCheck) Category() string { return "CLOUDWATCH" }

func (c *CredentialsCheck) Run() CheckResult {
	if c.Config == nil || !c.Config.CloudWatch.Enabled {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Export disabled, credentials not needed",
		}
	}

	probe := c.Probe
	if probe == nil {
		probe = func(ctx context.Context, region, namespace string) error {
			_, err := export.NewCloudWatchSink(ctx, region, namespace)
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := probe(ctx, c.Config.CloudWatch.Region, c.Config.CloudWatch.Namespace); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Credentials unavailable: %v", err),
			Suggestion: "Run 'aws configure', or export AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Credentials resolved for region %s", c.Config.CloudWatch.Region),
	}
}

// NewCloudWatchChecks creates all export-related checks.
func NewCloudWatchChecks(cfg *config.Config) []Check {
	return []Check{
		&ExportSettingsCheck{Config: cfg},
		&CredentialsCheck{Config: cfg},
	}
}
