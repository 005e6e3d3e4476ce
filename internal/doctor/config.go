package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/sysmonitor/sysmon/internal/config"
)

// ConfigFileCheck reports which config file is in effect. A missing
// file is a warning, not a failure: defaults keep the dashboard usable.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return "CONFIG" }

func (c *ConfigFileCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Error finding config: %v", err),
			Suggestion: "Check file permissions or run 'sysmon init' to create a config",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, built-in defaults in use",
			Suggestion: "Run 'sysmon init' to create a " + config.ConfigFileName + " file",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(path)),
	}
}

// ConfigValidCheck loads and validates the effective config.
type ConfigValidCheck struct {
	ConfigPath string
}

func (c *ConfigValidCheck) Name() string     { return "config_valid" }
func (c *ConfigValidCheck) Category() string { return "CONFIG" }

func (c *ConfigValidCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil || path == "" {
		// ConfigFileCheck reports the search problem; defaults always
		// validate.
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Defaults valid",
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Failed to load config: %v", err),
			Suggestion: "Fix the reported problem in " + path,
		}
	}

	msg := fmt.Sprintf("Interval %s, top %d processes", cfg.Interval, cfg.TopProcesses)
	if cfg.CloudWatch.Enabled {
		msg += fmt.Sprintf(", CloudWatch export to %s", cfg.CloudWatch.Namespace)
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: msg,
	}
}

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigValidCheck{ConfigPath: configPath},
	}
}
