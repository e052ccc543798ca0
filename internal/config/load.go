package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. DRILL_BACKEND_BASE_URL.
const EnvPrefix = "DRILL"

// flagBindings maps command-line flag names to configuration keys.
var flagBindings = map[string]string{
	"base-url":   "backend.base_url",
	"cookie":     "backend.cookie",
	"ui":         "ui.mode",
	"addr":       "ui.addr",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// RegisterFlags declares the command-line flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a YAML configuration file")
	fs.String("base-url", "", "base URL of the grading service")
	fs.String("cookie", "", "session cookie forwarded to the grading service")
	fs.String("ui", "", "presenter to use: terminal or web")
	fs.String("addr", "", "listen address of the web presenter")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-format", "", "log format: json or text")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("backend.cookie", "")
	v.SetDefault("backend.user_agent", "scry-drill/1.0")
	v.SetDefault("drill.learn_repeats", 3)
	v.SetDefault("drill.repeat_repeats", 1)
	v.SetDefault("ui.mode", "terminal")
	v.SetDefault("ui.addr", ":8090")
	v.SetDefault("ui.allowed_origins", []string{"http://localhost:8090", "http://127.0.0.1:8090"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load builds the configuration from defaults, the optional config file,
// environment variables and the flags in fs (which may be nil). Only flags
// the user actually set override other sources.
// Returns a populated Config or an error if loading/validation fails.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("drill")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagBindings {
			f := fs.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
