// Package config provides configuration management for fmf using Viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	fmferrors "github.com/thoreinstein/fmf/internal/errors"
	"github.com/thoreinstein/fmf/internal/paths"
	"github.com/thoreinstein/fmf/pkg/frontmatter"
	"github.com/thoreinstein/fmf/pkg/metadata"
)

// EnvPrefix is the prefix for environment overrides, e.g. FMF_STYLE.
const EnvPrefix = "FMF"

// EnvConfigDir overrides the user-level config directory.
const EnvConfigDir = "FMF_CONFIG_DIR"

// Config represents the top-level configuration structure.
type Config struct {
	Version   int      `mapstructure:"version" yaml:"version"`
	Style     string   `mapstructure:"style" yaml:"style"`
	KeyOrder  []string `mapstructure:"key_order" yaml:"key_order"`
	SortKeys  bool     `mapstructure:"sort_keys" yaml:"sort_keys"`
	OmitEmpty bool     `mapstructure:"omit_empty" yaml:"omit_empty"`
	Lock      bool     `mapstructure:"lock" yaml:"lock"`
	Editor    string   `mapstructure:"editor" yaml:"editor"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:  1,
		KeyOrder: []string{},
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// Any state from an earlier Init or Load is discarded.
func Init() {
	viper.Reset()

	viper.SetConfigName(paths.ConfigFileName)
	viper.SetConfigType("yaml")

	// The nearest project .fmf wins over the user-level directory.
	if dir, ok := paths.FindProjectConfigDir("."); ok {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(userConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("style", d.Style)
	viper.SetDefault("key_order", d.KeyOrder)
	viper.SetDefault("sort_keys", d.SortKeys)
	viper.SetDefault("omit_empty", d.OmitEmpty)
	viper.SetDefault("lock", d.Lock)
	viper.SetDefault("editor", d.Editor)
}

func userConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return paths.AppConfigDir()
}

// UserConfigFile returns the user-level config file path, honouring
// FMF_CONFIG_DIR.
func UserConfigFile() string {
	return filepath.Join(userConfigDir(), paths.ConfigFileName+".yaml")
}

// Load reads path, or searches the Init locations when path is empty, and
// returns the validated result. A missing file is an error only when path
// was given explicitly; otherwise the defaults apply. Validation failures
// are joined and match ErrInvalidConfig.
func Load(path string) (*Config, error) {
	if path != "" {
		expanded, err := paths.ExpandHome(path)
		if err != nil {
			return nil, err
		}
		viper.SetConfigFile(expanded)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load falls back to defaults
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errors.Join(errs...), "validating config"), fmferrors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// FileUsed returns the config file Viper loaded, or "" when running on defaults.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// ParsedStyle returns the configured style. ok is false when style is unset.
func (c *Config) ParsedStyle() (frontmatter.Style, bool, error) {
	if c == nil || c.Style == "" {
		return frontmatter.StyleYAML, false, nil
	}
	s, err := frontmatter.ParseStyle(c.Style)
	if err != nil {
		return frontmatter.StyleYAML, false, err
	}
	return s, true, nil
}

// KeySort returns the key order policy: Priority when key_order is set,
// Lexical when sort_keys is set, and nil to keep source order.
func (c *Config) KeySort() metadata.KeySort {
	switch {
	case c == nil:
		return nil
	case len(c.KeyOrder) > 0:
		return metadata.Priority(c.KeyOrder...)
	case c.SortKeys:
		return metadata.Lexical
	}
	return nil
}
