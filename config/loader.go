package config

// Viper configuration loader: config.yaml, BOOLQ_* environment variables and command line flags

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// output formats accepted by output.format
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputMarkdown = "markdown"
)

// ErrInvalidConfig is returned when a loaded value is out of range
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration loaded from config.yaml
type Config struct {
	// Logging configuration
	Logging struct {
		Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging" yaml:"logging"`

	// Record data configuration
	Data struct {
		File string `mapstructure:"file" yaml:"file"` // empty = built-in sample users
	} `mapstructure:"data" yaml:"data"`

	// Search configuration
	Search struct {
		Fields   []string `mapstructure:"fields" yaml:"fields"` // empty = match any field, case-sensitive
		Sort     string   `mapstructure:"sort" yaml:"sort"`
		MaxDepth int      `mapstructure:"maxDepth" yaml:"maxDepth"`
	} `mapstructure:"search" yaml:"search"`

	// Output configuration for one-shot queries
	Output struct {
		Format string `mapstructure:"format" yaml:"format"` // "text", "json", "yaml", "markdown"
	} `mapstructure:"output" yaml:"output"`

	// Appearance configuration
	Appearance struct {
		Theme string `mapstructure:"theme" yaml:"theme"` // "dark", "light", "auto"
	} `mapstructure:"appearance" yaml:"appearance"`
}

var appConfig *Config

// flagKeys maps command line flags to the config keys they override
var flagKeys = map[string]string{
	"log-level": "logging.level",
	"data":      "data.file",
	"fields":    "search.fields",
	"sort":      "search.sort",
	"max-depth": "search.maxDepth",
	"output":    "output.format",
	"theme":     "appearance.theme",
}

// NewFlagSet defines the command line flags. Flags that override config
// values are bound by LoadConfig.
func NewFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("boolq", pflag.ContinueOnError)

	flagSet.StringP("data", "d", "", "Record file (.yaml, .yml, .json; optionally .gz or .zst)")
	flagSet.StringSliceP("fields", "f", nil, "Only match these fields, case-insensitively")
	flagSet.Bool("pick-fields", false, "Choose the searched fields interactively")
	flagSet.StringP("output", "o", "", "Output format (text, json, yaml, markdown)")
	flagSet.String("sort", "", "Sort results by this field")
	flagSet.Int("max-depth", 0, "Maximum parenthesis nesting")
	flagSet.String("log-level", "", "Log level (debug, info, warn, error)")
	flagSet.String("theme", "", "Color theme (dark, light, auto)")
	flagSet.BoolP("explain", "x", false, "Show tokens and syntax tree with one-shot results")
	flagSet.BoolP("interactive", "i", false, "Start the terminal UI")
	flagSet.Bool("init-config", false, "Write a default config.yaml to the user config directory")
	flagSet.BoolP("version", "v", false, "Print version and exit")

	return flagSet
}

// LoadConfig loads configuration from config.yaml.
// Priority order (first found wins): project config → user config → current directory.
// Environment variables (BOOLQ_SEARCH_SORT, ...) override the file and
// flags that were set on flagSet override both. flagSet may be nil.
func LoadConfig(flagSet *pflag.FlagSet) (*Config, error) {
	// Reset viper to clear any previous configuration
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// first added = highest priority
	viper.AddConfigPath(GetProjectConfigDir())
	viper.AddConfigPath(GetConfigDir())
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("no config.yaml found, using defaults")
		} else {
			slog.Error("error reading config file", "error", err)
			return nil, err
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	viper.SetEnvPrefix("BOOLQ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if flagSet != nil {
		if err := bindFlags(flagSet); err != nil {
			slog.Warn("failed to bind command line flags", "error", err)
		}
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		slog.Error("failed to unmarshal config", "error", err)
		return nil, err
	}
	// AutomaticEnv values bypass Unmarshal's slice decoding
	cfg.Search.Fields = GetFields()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("logging.level", "error")
	viper.SetDefault("data.file", "")
	viper.SetDefault("search.fields", []string{})
	viper.SetDefault("search.sort", "name")
	viper.SetDefault("search.maxDepth", 64)
	viper.SetDefault("output.format", OutputText)
	viper.SetDefault("appearance.theme", "auto")
}

// bindFlags binds the override flags to their config keys
func bindFlags(flagSet *pflag.FlagSet) error {
	var errs []error
	for name, key := range flagKeys {
		f := flagSet.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("bind --%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case OutputText, OutputJSON, OutputYAML, OutputMarkdown:
	default:
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidConfig, c.Output.Format)
	}
	if c.Search.MaxDepth < 1 {
		return fmt.Errorf("%w: search.maxDepth must be positive, got %d", ErrInvalidConfig, c.Search.MaxDepth)
	}
	return nil
}

// GetConfig returns the loaded configuration
// If config hasn't been loaded yet, it loads it first
func GetConfig() *Config {
	if appConfig == nil {
		cfg, err := LoadConfig(nil)
		if err != nil {
			slog.Warn("failed to load config, using defaults", "error", err)
			viper.Reset()
			setDefaults()
			cfg = &Config{}
			_ = viper.Unmarshal(cfg)
		}
		appConfig = cfg
	}
	return appConfig
}

// GetString is a convenience method to get a string value from config
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt is a convenience method to get an integer value from config
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFields returns the search field allowlist. Comma separated values from
// the environment are split.
func GetFields() []string {
	var fields []string
	for _, f := range viper.GetStringSlice("search.fields") {
		for _, part := range strings.Split(f, ",") {
			if part = strings.TrimSpace(part); part != "" {
				fields = append(fields, part)
			}
		}
	}
	return fields
}

// SaveFields stores the field allowlist in the config file that was loaded,
// or the user config file when none was.
func SaveFields(fields []string) error {
	viper.Set("search.fields", fields)
	return saveConfig()
}

// saveConfig writes the current viper configuration to config.yaml
func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = GetConfigFile()
	}

	//nolint:gosec // G301: 0755 is appropriate for config directory
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return viper.WriteConfigAs(configFile)
}

// GetTheme returns the appearance theme setting
func GetTheme() string {
	theme := viper.GetString("appearance.theme")
	if theme == "" {
		return "auto"
	}
	return theme
}

// GetEffectiveTheme resolves "auto" to actual theme based on terminal detection
func GetEffectiveTheme() string {
	theme := GetTheme()
	if theme != "auto" {
		return theme
	}
	// Detect via COLORFGBG env var (format: "fg;bg")
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			bg := parts[len(parts)-1]
			// 0-7 = dark colors, 8+ = light colors
			if bg >= "8" {
				return "light"
			}
		}
	}
	return "dark"
}
