package config

import (
	"time"

	"github.com/sysmonitor/sysmon/internal/export"
	"github.com/sysmonitor/sysmon/internal/metrics"
)

// MinInterval is the fastest allowed sampling cadence.
const MinInterval = 500 * time.Millisecond

// Config represents the complete .sysmon.yaml configuration file.
type Config struct {
	// Interval is the sampling cadence. Values below MinInterval are
	// rejected at validation.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// TopProcesses is the number of rows in the process panel.
	TopProcesses int `yaml:"top_processes" mapstructure:"top_processes"`

	// CloudWatch controls the metric export sink.
	CloudWatch CloudWatchConfig `yaml:"cloudwatch" mapstructure:"cloudwatch"`
}

// CloudWatchConfig holds the export sink settings. Enabling export here
// is necessary but not sufficient: credentials still have to resolve at
// startup for metrics to actually leave the host.
type CloudWatchConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Region is the AWS region metrics are sent to.
	Region string `yaml:"region" mapstructure:"region"`

	// Namespace groups the metrics in the CloudWatch console.
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

// DefaultConfig returns a Config with the stock settings.
func DefaultConfig() *Config {
	return &Config{
		Interval:     MinInterval,
		TopProcesses: metrics.DefaultProcessLimit,
		CloudWatch: CloudWatchConfig{
			Enabled:   false,
			Region:    export.DefaultRegion,
			Namespace: export.DefaultNamespace,
		},
	}
}
