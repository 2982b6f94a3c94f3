// Package main provides the toolbox CLI: the UI bridge servers, the
// terminal browser and one subcommand per catalog command.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/settings"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags.
type rootOptions struct {
	settingsPath string
	catalogPath  string
	logLevel     string
}

// env is what a subcommand runs against.
type env struct {
	settings *settings.Settings
	viper    *viper.Viper
	logger   *zap.Logger
	svc      *bridge.Service
}

// newRootCmd creates the root command for toolbox
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "toolbox",
		Short: "Rapid Toolbox app launcher",
		Long: `toolbox keeps a catalog of local apps and scripts grouped into categories,
launches them as detached processes and serves the catalog to the UI.

It supports:
  - A loopback WebSocket/HTTP bridge and a stdio bridge for the UI
  - A terminal browser for launching apps
  - Editing apps, categories, theme and language from the command line`,
		Version: version,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.settingsPath, "settings", "", "Settings file (default: ./rapid-toolbox.yaml or the user config dir)")
	pf.StringVar(&opts.catalogPath, "config", "", "Catalog file (overrides catalog_path)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newStdioCmd(opts),
		newBrowseCmd(opts),
		newAppCmd(opts),
		newCategoryCmd(opts),
		newIconCmd(opts),
		newThemeCmd(opts),
		newInfoCmd(opts),
		newLangCmd(opts),
		newRelpathCmd(opts),
		newSettingsCmd(opts),
		newDoctorCmd(opts),
	)

	return rootCmd
}

// loadSettings reads settings and applies flag overrides. Short-lived
// commands log at warn unless a level was asked for.
func (o *rootOptions) loadSettings(quiet bool) (*settings.Settings, *viper.Viper, error) {
	v, err := settings.LoadConfig(o.settingsPath)
	if err != nil {
		return nil, nil, err
	}

	if o.catalogPath != "" {
		v.Set("catalog_path", o.catalogPath)
	}
	switch {
	case o.logLevel != "":
		v.Set("logging.level", o.logLevel)
	case quiet && !v.InConfig("logging") && os.Getenv(settings.EnvPrefix+"_LOGGING_LEVEL") == "":
		v.Set("logging.level", "warn")
	}

	s, err := settings.FromViper(v)
	if err != nil {
		return nil, nil, err
	}
	return s, v, nil
}

// setup loads settings, builds the logger and loads the catalog.
func (o *rootOptions) setup(quiet bool) (*env, error) {
	s, v, err := o.loadSettings(quiet)
	if err != nil {
		return nil, err
	}

	logger, err := settings.NewLogger(v)
	if err != nil {
		return nil, err
	}

	svc := bridge.NewService(s.CatalogPath, bridge.Options{Logger: logger})
	if !svc.LoadConfig() {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to load catalog %s", s.CatalogPath)
	}

	return &env{settings: s, viper: v, logger: logger, svc: svc}, nil
}

// close flushes the logger.
func (e *env) close() {
	_ = e.logger.Sync()
}

// check turns a failed facade command into an error.
func check(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf(format, args...)
}
