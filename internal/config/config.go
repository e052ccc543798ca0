package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	Drill   DrillConfig   `mapstructure:"drill"   validate:"required"`
	UI      UIConfig      `mapstructure:"ui"      validate:"required"`
	Log     LogConfig     `mapstructure:"log"     validate:"required"`
}

// BackendConfig describes how to reach the grading service.
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"gt=0"`
	// Cookie is forwarded verbatim in the Cookie header, the way a browser
	// sends its session cookie.
	Cookie    string `mapstructure:"cookie"`
	UserAgent string `mapstructure:"user_agent" validate:"required"`
}

// DrillConfig controls how many times each word is drilled in one pass.
type DrillConfig struct {
	LearnRepeats  int `mapstructure:"learn_repeats"  validate:"gte=1,lte=10"`
	RepeatRepeats int `mapstructure:"repeat_repeats" validate:"gte=1,lte=10"`
}

// UIConfig selects the presenter.
type UIConfig struct {
	Mode string `mapstructure:"mode" validate:"required,oneof=terminal web"`
	// Addr is the listen address of the browser presenter.
	Addr string `mapstructure:"addr" validate:"required"`
	// AllowedOrigins lists the origins the browser presenter accepts
	// cross-origin requests from.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"  validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}
