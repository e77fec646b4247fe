// Package config provides configuration management for lib-shared using Viper
// for loading from a YAML file, LIB_SHARED_ environment variables and
// command-line flags.
//
// Only operational settings are configurable: the registry location, the
// project directory, timeouts and logging. The component allow-list and the
// peer dependency list are compiled in and copied into every Config so that
// they can be injected into components without ever being read from user input.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lib-shared/lib-shared/internal/logging"
	"github.com/lib-shared/lib-shared/internal/validation"
	"github.com/spf13/viper"
)

const (
	// FileName is the default configuration file name (without extension).
	FileName = ".lib-shared"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "LIB_SHARED"

	// DefaultRegistryURL is the base URL serving registry.json and <name>.json.
	DefaultRegistryURL = "https://raw.githubusercontent.com/SergioLNeves/Lib-Share/master/public/r"

	// DefaultRegistryTimeout bounds a single registry request.
	DefaultRegistryTimeout = 30 * time.Second

	// DefaultInstallTimeout bounds the package manager subprocess.
	DefaultInstallTimeout = 2 * time.Minute
)

// envKeyReplacer maps nested keys such as registry.url to LIB_SHARED_REGISTRY_URL.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// BindEnv enables LIB_SHARED_ environment overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
}

// Dependencies returns the peer dependencies every component needs.
func Dependencies() []string {
	return []string{"class-variance-authority", "clsx", "tailwind-merge"}
}

type Config struct {
	Registry RegistryConfig `mapstructure:"registry" yaml:"registry"`
	Project  ProjectConfig  `mapstructure:"project" yaml:"project"`
	Install  InstallConfig  `mapstructure:"install" yaml:"install"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`

	// Compiled-in lists, never unmarshalled.
	Components   []string `mapstructure:"-" yaml:"-"`
	Dependencies []string `mapstructure:"-" yaml:"-"`
}

type RegistryConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type ProjectConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type InstallConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Skip    bool          `mapstructure:"skip" yaml:"skip"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns a Config with every default applied and the project
// directory set to ".".
func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			URL:     DefaultRegistryURL,
			Timeout: DefaultRegistryTimeout,
		},
		Project: ProjectConfig{Dir: "."},
		Install: InstallConfig{Timeout: DefaultInstallTimeout},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Components:   validation.DefaultAllowList(),
		Dependencies: Dependencies(),
	}
}

// SetDefaults registers the defaults on v so that environment variables are
// picked up by Unmarshal even when no config file sets the key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("registry.url", d.Registry.URL)
	v.SetDefault("registry.timeout", d.Registry.Timeout)
	v.SetDefault("project.dir", d.Project.Dir)
	v.SetDefault("install.timeout", d.Install.Timeout)
	v.SetDefault("install.skip", d.Install.Skip)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// LoadFrom builds the configuration from v, applies defaults for unset values
// and validates the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	config := Default()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	// Empty strings from the environment or a sparse file fall back to defaults
	defaults := Default()
	if config.Registry.URL == "" {
		config.Registry.URL = defaults.Registry.URL
	}
	if config.Project.Dir == "" {
		config.Project.Dir = defaults.Project.Dir
	}
	if config.Install.Timeout == 0 {
		config.Install.Timeout = defaults.Install.Timeout
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Log.Format == "" {
		config.Log.Format = defaults.Log.Format
	}

	config.Components = validation.DefaultAllowList()
	config.Dependencies = Dependencies()

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig validates configuration values for security and correctness.
// It normalises the registry URL and makes the project directory absolute.
func validateConfig(config *Config) error {
	normalized, err := validation.ValidateRegistryURL(config.Registry.URL)
	if err != nil {
		return fmt.Errorf("registry.url: %w", err)
	}
	config.Registry.URL = normalized

	if config.Registry.Timeout < 0 {
		return fmt.Errorf("registry.timeout must not be negative, got %s", config.Registry.Timeout)
	}

	if err := validateProjectConfig(&config.Project); err != nil {
		return fmt.Errorf("project: %w", err)
	}

	if config.Install.Timeout < 0 {
		return fmt.Errorf("install.timeout must not be negative, got %s", config.Install.Timeout)
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", config.Log.Format)
	}

	return nil
}

func validateProjectConfig(config *ProjectConfig) error {
	abs, err := filepath.Abs(config.Dir)
	if err != nil {
		return fmt.Errorf("resolving dir %q: %w", config.Dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("dir %q: %w", config.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("dir %q is not a directory", config.Dir)
	}

	config.Dir = abs
	return nil
}
