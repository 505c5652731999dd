package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"browsed/internal/errors"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. BROWSED_FILTER_MODE.
const EnvPrefix = "BROWSED"

// Filter modes
const (
	FilterRegex = "regex"
	FilterGlob  = "glob"
	FilterFuzzy = "fuzzy"
)

// Listing sort orders
const (
	SortName = "name"
	SortNone = "none"
)

// DefaultPlaceholder is shown for files that are not previewed as images.
const DefaultPlaceholder = "No preview available"

// Config represents the application configuration structure.
type Config struct {
	Session SessionConfig `yaml:"session" mapstructure:"session"`
	Listing ListingConfig `yaml:"listing" mapstructure:"listing"`
	Filter  FilterConfig  `yaml:"filter" mapstructure:"filter"`
	Preview PreviewConfig `yaml:"preview" mapstructure:"preview"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
}

// SessionConfig controls session startup.
type SessionConfig struct {
	StartDir string `yaml:"start_dir" mapstructure:"start_dir"` // Empty means the working directory
}

// ListingConfig controls directory listing order.
type ListingConfig struct {
	DirectoriesFirst bool   `yaml:"directories_first" mapstructure:"directories_first"`
	Sort             string `yaml:"sort" mapstructure:"sort"` // name or none
}

// FilterConfig selects the pattern syntax for name filters.
type FilterConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"` // regex, glob or fuzzy
}

// PreviewConfig controls preview classification.
type PreviewConfig struct {
	ImageExtensions []string `yaml:"image_extensions" mapstructure:"image_extensions"` // Case-sensitive, without the dot
	Placeholder     string   `yaml:"placeholder" mapstructure:"placeholder"`
}

// LoggingConfig controls the log sink.
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn or error
	JSON  bool   `yaml:"json" mapstructure:"json"`
	File  string `yaml:"file" mapstructure:"file"` // Empty means stderr
}

// ServerConfig controls the websocket bridge.
type ServerConfig struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// DefaultPath returns ~/.config/browsed/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "browsed", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path, layered over
// the defaults and under BROWSED_* environment overrides. A missing file is
// not an error.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) && !isConfigNotFound(err) {
				return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func isConfigNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(err, &pathErr) && os.IsNotExist(pathErr)
}

func setDefaults(v *viper.Viper) {
	d := defaultConfig()
	v.SetDefault("session.start_dir", d.Session.StartDir)
	v.SetDefault("listing.directories_first", d.Listing.DirectoriesFirst)
	v.SetDefault("listing.sort", d.Listing.Sort)
	v.SetDefault("filter.mode", d.Filter.Mode)
	v.SetDefault("preview.image_extensions", d.Preview.ImageExtensions)
	v.SetDefault("preview.placeholder", d.Preview.Placeholder)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.json", d.Logging.JSON)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Listing.DirectoriesFirst = true
	cfg.Listing.Sort = SortName

	cfg.Filter.Mode = FilterRegex

	cfg.Preview.ImageExtensions = []string{"jpg", "png", "gif"}
	cfg.Preview.Placeholder = DefaultPlaceholder

	cfg.Logging.Level = "info"

	cfg.Server.Addr = "127.0.0.1:7878"
	cfg.Server.AllowedOrigins = []string{}

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	switch c.Filter.Mode {
	case FilterRegex, FilterGlob, FilterFuzzy:
	default:
		return errors.NewConfigError("invalid filter mode", "filter.mode", errors.InvalidConfig,
			fmt.Errorf("%q is not one of regex, glob, fuzzy", c.Filter.Mode))
	}

	switch c.Listing.Sort {
	case SortName, SortNone:
	default:
		return errors.NewConfigError("invalid sort order", "listing.sort", errors.InvalidConfig,
			fmt.Errorf("%q is not one of name, none", c.Listing.Sort))
	}

	if len(c.Preview.ImageExtensions) == 0 {
		return errors.NewConfigError("at least one image extension is required", "preview.image_extensions", errors.InvalidConfig, nil)
	}
	for i, ext := range c.Preview.ImageExtensions {
		if ext == "" || strings.HasPrefix(ext, ".") {
			return errors.NewConfigError("image extensions must be non-empty and given without a dot",
				fmt.Sprintf("preview.image_extensions[%d]", i), errors.InvalidConfig, nil)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.NewConfigError("invalid log level", "logging.level", errors.InvalidConfig,
			fmt.Errorf("%q is not one of debug, info, warn, error", c.Logging.Level))
	}

	if c.Session.StartDir != "" && !filepath.IsAbs(c.Session.StartDir) {
		return errors.NewConfigError("start directory must be absolute", "session.start_dir", errors.InvalidConfig, nil)
	}

	return nil
}

// IsDebug reports whether debug logging is configured.
func (c *Config) IsDebug() bool {
	return strings.EqualFold(c.Logging.Level, "debug")
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
