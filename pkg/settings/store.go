package settings

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the name of the per-user config directory.
	ConfigDirName = "rapid-toolbox"
	// ConfigName is the settings file name without extension.
	ConfigName = "rapid-toolbox"
	// EnvPrefix prefixes environment overrides, e.g. RTB_LISTEN.
	EnvPrefix = "RTB"
	// DefaultCatalogPath is the catalog file, relative to the working directory.
	DefaultCatalogPath = "config.json"
	// DefaultListen is the UI bridge listen address.
	DefaultListen = "127.0.0.1:7878"
)

// UserConfigDir returns the per-user settings directory.
func UserConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise the platform default
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		configHome = dir
	}
	return filepath.Join(configHome, ConfigDirName), nil
}

// LoadConfig reads settings from file and environment variables. An empty
// path searches the working directory and the user config directory; a
// missing file is not an error.
func LoadConfig(path string) (*viper.Viper, error) {
	v := viper.New()

	defaults := Defaults()
	v.SetDefault("catalog_path", defaults.CatalogPath)
	v.SetDefault("listen", defaults.Listen)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.file", defaults.Logging.File)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := UserConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	// Environment variable support: RTB_LOGGING_LEVEL=debug
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading settings: %w", err)
		}
		// No settings file is fine -- use defaults
	}

	return v, nil
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load is LoadConfig followed by FromViper.
func Load(path string) (*Settings, *viper.Viper, error) {
	v, err := LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := FromViper(v)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

// Validate checks the settings for values the backend cannot run with.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.CatalogPath) == "" {
		return errors.New("catalog_path cannot be empty")
	}
	if err := ValidateListen(s.Listen); err != nil {
		return err
	}
	return nil
}

// ValidateListen requires a host:port address on a loopback interface.
func ValidateListen(addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	if port == "" {
		return fmt.Errorf("invalid listen address %q: missing port", addr)
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("listen address %q must be on a loopback interface", addr)
	}
	return nil
}

// NewLogger creates a configured Zap logger from Viper settings.
// Reads "logging.level" (debug, info, warn, error; default "info"),
// "logging.format" (json, console; default "console") and "logging.file"
// (empty logs to stderr).
func NewLogger(v *viper.Viper) (*zap.Logger, error) {
	level := v.GetString("logging.level")
	format := v.GetString("logging.format")
	file := v.GetString("logging.file")

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	switch format {
	case "console", "":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q: must be \"json\" or \"console\"", format)
	}

	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	}

	return cfg.Build()
}

// WriteDefault writes the default settings as YAML. An existing file is
// only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("settings file already exists: %s", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := Marshal(Defaults())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// Marshal renders settings as YAML.
func Marshal(s *Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return data, nil
}
