// Package config loads depfind settings from YAML and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("depfind.config")

// Config holds all configuration for depfind.
type Config struct {
	Log     LogConfig       `mapstructure:"log"`
	Loader  LoaderConfig    `mapstructure:"loader"`
	Scope   SelectionConfig `mapstructure:"scope"`
	Filter  SelectionConfig `mapstructure:"filter"`
	Symbols SymbolsConfig   `mapstructure:"symbols"`
}

type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity"`
	Path      string `mapstructure:"path"` // empty logs to stderr
}

// LoaderConfig controls batch parsing of class files.
type LoaderConfig struct {
	Workers   int `mapstructure:"workers"`
	CacheSize int `mapstructure:"cache_size"` // parsed class files kept between loads; 0 disables
}

// SelectionConfig picks graph nodes by name. The kind switches say which
// node kinds the patterns apply to.
type SelectionConfig struct {
	Packages bool     `mapstructure:"packages"`
	Classes  bool     `mapstructure:"classes"`
	Features bool     `mapstructure:"features"`
	Includes []string `mapstructure:"includes"`
	Excludes []string `mapstructure:"excludes"`
}

// SymbolsConfig picks which symbols the symbols command and the language
// server list.
type SymbolsConfig struct {
	Classes        bool     `mapstructure:"classes"`
	Fields         bool     `mapstructure:"fields"`
	Methods        bool     `mapstructure:"methods"`
	LocalVariables bool     `mapstructure:"local_variables"`
	InnerClasses   bool     `mapstructure:"inner_classes"`
	Includes       []string `mapstructure:"includes"`
	Excludes       []string `mapstructure:"excludes"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Load reads configuration from path, or from depfind.yaml in the current
// directory or ./configs when path is empty. DEPFIND_ environment
// variables override file values, e.g. DEPFIND_LOADER_WORKERS.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("depfind")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			log.Debug("no config file found, using defaults")
		case os.IsNotExist(err):
			log.Warningf("config file %s not found, using defaults", path)
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromReader loads configuration from content in the given format.
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DEPFIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.verbosity", 0)
	v.SetDefault("log.path", "")

	v.SetDefault("loader.workers", runtime.GOMAXPROCS(0))
	v.SetDefault("loader.cache_size", 4096)

	for _, section := range []string{"scope", "filter"} {
		v.SetDefault(section+".packages", true)
		v.SetDefault(section+".classes", true)
		v.SetDefault(section+".features", true)
		v.SetDefault(section+".includes", []string{})
		v.SetDefault(section+".excludes", []string{})
	}

	v.SetDefault("symbols.classes", true)
	v.SetDefault("symbols.fields", true)
	v.SetDefault("symbols.methods", true)
	v.SetDefault("symbols.local_variables", true)
	v.SetDefault("symbols.inner_classes", true)
	v.SetDefault("symbols.includes", []string{})
	v.SetDefault("symbols.excludes", []string{})
}

func (c *Config) Validate() error {
	if c.Loader.Workers < 1 {
		return fmt.Errorf("loader workers must be at least 1")
	}
	if c.Loader.CacheSize < 0 {
		return fmt.Errorf("loader cache size must not be negative")
	}
	for name, patterns := range map[string][]string{
		"scope.includes":   c.Scope.Includes,
		"scope.excludes":   c.Scope.Excludes,
		"filter.includes":  c.Filter.Includes,
		"filter.excludes":  c.Filter.Excludes,
		"symbols.includes": c.Symbols.Includes,
		"symbols.excludes": c.Symbols.Excludes,
	} {
		for _, p := range patterns {
			if _, err := regexp.Compile(p); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}
