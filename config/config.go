package config

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"platform-cli/pkg/services/policy"
	"strings"

	"github.com/spf13/viper"
)

// ToolName names the configuration folder and prefixes environment variables.
const ToolName = "platform-cli"

// Config holds the settings of one platform-cli invocation. Values are
// resolved in the order flag, environment, config file, default.
type Config struct {
	LogLevel   string
	ConfigFile string
	Profile    string
	Region     string
	Endpoint   string
	PolicyFile string
	Output     string

	// Log receives log output. Defaults to os.Stderr.
	Log io.Writer
}

// GetConfigFolder retrieves the folder where the config file is stored.
// It searches for the xdg environment path first and will secondarily
// place it in the home directory.
func (c *Config) GetConfigFolder(xdgPath string) (string, error) {
	configPath := xdgPath

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config")
	}

	folder := filepath.Join(configPath, ToolName)
	slog.Debug("Using config folder", "prefix", "config.Config.GetConfigFolder", "path", folder)

	return folder, nil
}

// ParseLevel maps a --log-level value to a slog level. Unknown values fall
// back to info and report false.
func ParseLevel(value string) (slog.Level, bool) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	case "trace": // no separate trace level in slog
		return slog.LevelDebug, true
	}
	return slog.LevelInfo, false
}

// SetupLogger installs the process logger at LogLevel.
func (c *Config) SetupLogger() {
	var output io.Writer = os.Stderr
	if c.Log != nil {
		output = c.Log
	}

	level, ok := ParseLevel(c.LogLevel)
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	if !ok {
		slog.Error("Unrecognized log level value. Defaulting to 'info'.", "provided_level", c.LogLevel)
	}
}

// Init installs the logger and points viper at the config file, which is read
// if it exists.
func (c *Config) Init() {
	c.SetupLogger()

	if c.ConfigFile == "" {
		configFolder, err := c.GetConfigFolder(os.Getenv("XDG_CONFIG_HOME"))
		if err != nil {
			log.Fatalf("%s", err)
		}
		c.ConfigFile = filepath.Join(configFolder, "config.toml")

		// files created by hand default to 0644
		err = os.Chmod(c.ConfigFile, os.FileMode(0600))
		if err != nil && !os.IsNotExist(err) {
			log.Fatalf("%s", err)
		}
	}
	viper.SetConfigType("toml")
	viper.SetConfigFile(c.ConfigFile)
	viper.SetConfigPermissions(os.FileMode(0600))

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(c.ConfigFile); statErr == nil {
			slog.Warn("Failed to read config file, ignoring it", "path", c.ConfigFile, "error", err)
		} else {
			slog.Debug("No config file found", "path", c.ConfigFile)
		}
	}
}

// AWS returns the session settings carried by the config.
func (c *Config) AWS() AWSConfig {
	return AWSConfig{
		ProfileName: c.Profile,
		Region:      c.Region,
		Endpoint:    c.Endpoint,
	}
}

// Policy returns the built-in tag policy, or the one loaded from PolicyFile.
func (c *Config) Policy() (policy.Policy, error) {
	if c.PolicyFile == "" {
		return policy.Default(), nil
	}
	slog.Debug("Loading policy file", "path", c.PolicyFile)
	return policy.LoadFile(c.PolicyFile)
}
