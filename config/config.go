// Package config loads wifiview settings from defaults, the config file,
// WIFIVIEW_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "wifiview"
	envPrefix  = "wifiview"
)

// Config is the complete application configuration.
type Config struct {
	Source   string `mapstructure:"source" yaml:"source"`
	File     string `mapstructure:"file" yaml:"file,omitempty"`
	Language string `mapstructure:"language" yaml:"language"`

	Export struct {
		Dir      string `mapstructure:"dir" yaml:"dir"`
		BaseName string `mapstructure:"base_name" yaml:"base_name"`
	} `mapstructure:"export" yaml:"export"`

	Timing struct {
		LoadDelay    time.Duration `mapstructure:"load_delay" yaml:"load_delay"`
		ExportDelay  time.Duration `mapstructure:"export_delay" yaml:"export_delay"`
		Notification time.Duration `mapstructure:"notification" yaml:"notification"`
	} `mapstructure:"timing" yaml:"timing"`

	Log struct {
		File  string `mapstructure:"file" yaml:"file"`
		Debug bool   `mapstructure:"debug" yaml:"debug"`
	} `mapstructure:"log" yaml:"log"`
}

// Defaults are applied before any file, environment or flag value.
func Defaults() map[string]any {
	return map[string]any{
		"source":              "fixture",
		"file":                "",
		"language":            "en",
		"export.dir":          ".",
		"export.base_name":    "wifi-profiles",
		"timing.load_delay":   time.Second,
		"timing.export_delay": 500 * time.Millisecond,
		"timing.notification": 3 * time.Second,
		"log.file":            "wifiview-debug.log",
		"log.debug":           false,
	}
}

// FlagKeys maps flag names to the config keys they override.
var FlagKeys = map[string]string{
	"source":   "source",
	"file":     "file",
	"lang":     "language",
	"dir":      "export.dir",
	"log-file": "log.file",
	"debug":    "log.debug",
}

// GetConfigPath returns the path of the user or system-wide config file.
func GetConfigPath(system bool) (string, error) {
	var dir string
	if system {
		switch runtime.GOOS {
		case "windows":
			dir = filepath.Join(os.Getenv("ProgramData"), "wifiview")
		default:
			dir = "/etc/wifiview"
		}
	} else {
		userDir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		dir = filepath.Join(userDir, "wifiview")
	}
	return filepath.Join(dir, configName+".yaml"), nil
}

// LoadConfig resolves a T from defaults, config file, environment and the
// flags of cmd. explicitPath, when non-empty, must exist.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	}
	if p, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	if p, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := bindFlags(v, cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// bindFlags binds only flags the user actually set, so an unset flag never
// shadows the config file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := FlagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("bind flag --%s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Default returns the configuration produced by Defaults alone.
func Default() Config {
	var c Config
	c.Source = "fixture"
	c.Language = "en"
	c.Export.Dir = "."
	c.Export.BaseName = "wifi-profiles"
	c.Timing.LoadDelay = time.Second
	c.Timing.ExportDelay = 500 * time.Millisecond
	c.Timing.Notification = 3 * time.Second
	c.Log.File = "wifiview-debug.log"
	return c
}

// WriteConfigFile writes c as YAML to path, creating parent directories.
// It refuses to overwrite an existing file unless force is set.
func WriteConfigFile[T any](c *T, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", filepath.Dir(path), err)
	}
	return os.WriteFile(path, data, 0o600)
}
