package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// HomeEnv names the directory searched for a configuration file when none is
// given explicitly.
const HomeEnv = "JAY_HOME"

// configNames are tried in order inside the home directory.
var configNames = []string{"jay.toml", "jay.yaml", "jay.yml"}

const (
	DefaultLogLevel        = "none"
	DefaultLogFormat       = "json"
	DefaultSQLMaxOpenConns = 4
)

type Configuration struct {
	Version   string `toml:"-" yaml:"-"`
	BuildDate string `toml:"-" yaml:"-"`
	Commit    string `toml:"-" yaml:"-"`
	JayHome   string `toml:"-" yaml:"-"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-" yaml:"-"`

	Log     LogConfiguration     `toml:"log" yaml:"log"`
	Interop InteropConfiguration `toml:"interop" yaml:"interop"`
}

type LogConfiguration struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	File   string `toml:"file" yaml:"file"`

	// Source adds the source file and line to each record.
	Source bool `toml:"source" yaml:"source"`
}

type InteropConfiguration struct {
	// Disabled lists host type names that are not registered with the bridge.
	Disabled        []string `toml:"disabled" yaml:"disabled"`
	SQLMaxOpenConns int      `toml:"sql_max_open_conns" yaml:"sql_max_open_conns"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		JayHome: os.Getenv(HomeEnv),
		Log: LogConfiguration{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Interop: InteropConfiguration{
			SQLMaxOpenConns: DefaultSQLMaxOpenConns,
		},
	}
}

// LoadConfiguration overlays the file at path onto the defaults. The format is
// chosen by extension: .toml, .yaml or .yml. An empty path falls back to the
// first of jay.toml, jay.yaml and jay.yml found in JayHome, and to the
// defaults when there is none.
func LoadConfiguration(path string) (Configuration, error) {
	config := DefaultConfiguration()
	if path == "" {
		path = config.discover()
	}
	if path == "" {
		return config, nil
	}
	config.Path = path

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read configuration: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return config, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return config, fmt.Errorf("unsupported configuration format %q", ext)
	}

	if config.Interop.SQLMaxOpenConns < 0 {
		return config, fmt.Errorf("interop.sql_max_open_conns must not be negative, got %d", config.Interop.SQLMaxOpenConns)
	}
	return config, nil
}

func (c Configuration) discover() string {
	if c.JayHome == "" {
		return ""
	}
	for _, name := range configNames {
		path := filepath.Join(c.JayHome, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// IsDisabled reports whether a host type was switched off in configuration.
// Type names compare case-insensitively.
func (c Configuration) IsDisabled(hostType string) bool {
	for _, name := range c.Interop.Disabled {
		if strings.EqualFold(name, hostType) {
			return true
		}
	}
	return false
}
