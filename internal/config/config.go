// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Parser ParserConfig `mapstructure:"parser" yaml:"parser"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// ParserConfig bounds the extraction stage.
type ParserConfig struct {
	// MaxDescription caps issue descriptions, in bytes, truncated on a rune
	// boundary so the cut never lands inside a multi-byte character.
	MaxDescription int `mapstructure:"max_description" yaml:"max_description"`
}

// RenderConfig tunes the rendering stage.
type RenderConfig struct {
	// ConsoleCap is the maximum number of issues printed per severity bucket
	// before the elision line.
	ConsoleCap int `mapstructure:"console_cap" yaml:"console_cap"`
	// Title is the document title used by the HTML reporters.
	Title string `mapstructure:"title" yaml:"title"`
}

// Load unmarshals the fully-resolved viper state into a Config and validates
// the handful of values the pipeline depends on.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Parser.MaxDescription <= 0 {
		return nil, fmt.Errorf("parser.max_description must be positive, got %d", cfg.Parser.MaxDescription)
	}
	if cfg.Render.ConsoleCap <= 0 {
		return nil, fmt.Errorf("render.console_cap must be positive, got %d", cfg.Render.ConsoleCap)
	}
	return &cfg, nil
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// Logger Defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "auditlens")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// Parser Defaults
	v.SetDefault("parser.max_description", 200)

	// Render Defaults
	v.SetDefault("render.console_cap", 5)
	v.SetDefault("render.title", "Audit Report")
}
