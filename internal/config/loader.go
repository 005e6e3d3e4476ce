// Package config loads and validates the .sysmon.yaml configuration
// file, layering environment overrides on top of file values.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sysmonitor/sysmon/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".sysmon.yaml"
	// GlobalConfigDir is the directory for global config, under $HOME.
	GlobalConfigDir = ".config/sysmon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"

	// EnvPrefix namespaces environment overrides, e.g.
	// SYSMON_CLOUDWATCH_REGION.
	EnvPrefix = "SYSMON"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'sysmon init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .sysmon.yaml in current directory
// 3. .sysmon.yaml in parent directories (stops at git root or home)
// 4. ~/.config/sysmon/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults
// if no file exists. Environment overrides still apply either way.
func LoadOrDefault() (*Config, error) {
	path, err := Find("")
	if err != nil {
		return nil, err
	}

	if path == "" {
		return parseConfig(newViper(), "")
	}

	return Load(path)
}

// newViper builds a viper instance with defaults and env binding set
// up. Defaults registered here double as the key list AutomaticEnv
// resolves against during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("interval", DefaultConfig().Interval)
	v.SetDefault("top_processes", DefaultConfig().TopProcesses)
	v.SetDefault("cloudwatch.enabled", false)
	v.SetDefault("cloudwatch.region", DefaultConfig().CloudWatch.Region)
	v.SetDefault("cloudwatch.namespace", DefaultConfig().CloudWatch.Namespace)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// parseConfig unmarshals viper state into a Config and validates it.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+displayPath(path))
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func displayPath(path string) string {
	if path == "" {
		return ConfigFileName
	}
	return path
}
