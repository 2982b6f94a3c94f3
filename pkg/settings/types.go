// Package settings provides process settings for the toolbox backend:
// where the catalog lives, where the UI bridge listens and how to log.
package settings

// Settings represents the process settings.
type Settings struct {
	CatalogPath string  `mapstructure:"catalog_path" yaml:"catalog_path"` // Default: config.json in the working directory
	Listen      string  `mapstructure:"listen" yaml:"listen"`             // UI bridge address, loopback only
	Logging     Logging `mapstructure:"logging" yaml:"logging"`
}

// Logging configures the zap logger.
type Logging struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // json or console
	File   string `mapstructure:"file" yaml:"file"`     // Empty logs to stderr
}

// Defaults returns the settings used when nothing is configured.
func Defaults() *Settings {
	return &Settings{
		CatalogPath: DefaultCatalogPath,
		Listen:      DefaultListen,
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
