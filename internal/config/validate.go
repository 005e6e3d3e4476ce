package config

import (
	"fmt"

	"github.com/sysmonitor/sysmon/internal/errors"
)

// Validate checks the config for errors and returns structured error
// messages with suggestions.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Sampling interval %s is below the %s floor", cfg.Interval, MinInterval),
			fmt.Sprintf("Set 'interval: %s' or higher in %s.", MinInterval, ConfigFileName))
	}

	if cfg.TopProcesses < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("top_processes must be at least 1, got %d", cfg.TopProcesses),
			"Set 'top_processes: 10' for the stock process panel.")
	}

	if err := validateCloudWatch(cfg.CloudWatch); err != nil {
		return err
	}

	return nil
}

// validateCloudWatch checks the export section. Region and namespace
// only matter when export is enabled.
func validateCloudWatch(cw CloudWatchConfig) error {
	if !cw.Enabled {
		return nil
	}

	if cw.Region == "" {
		return errors.New(errors.ErrConfig,
			"CloudWatch export is enabled but no region is set",
			"Set 'cloudwatch.region: us-east-1' or export SYSMON_CLOUDWATCH_REGION.")
	}

	if cw.Namespace == "" {
		return errors.New(errors.ErrConfig,
			"CloudWatch export is enabled but no namespace is set",
			"Set 'cloudwatch.namespace: SystemMonitor' to group metrics in the console.")
	}

	return nil
}
