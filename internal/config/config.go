// Package config loads smoothline's configuration from defaults, an optional
// YAML file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"honnef.co/go/smooth"
)

// EnvPrefix is the prefix of environment variables, e.g.
// SMOOTHLINE_SMOOTHING_SHARPNESS → smoothing.sharpness.
const EnvPrefix = "SMOOTHLINE"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Smoothing SmoothingConfig `mapstructure:"smoothing"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
	// BodyLimit is the maximum request body size in bytes.
	BodyLimit int `mapstructure:"body_limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SmoothingConfig holds the default pipeline and parameters. Requests may
// override the parameters and the strategy.
type SmoothingConfig struct {
	Strategy       string  `mapstructure:"strategy"`
	Metric         string  `mapstructure:"metric"`
	Densify        bool    `mapstructure:"densify"`
	Rescale        bool    `mapstructure:"rescale"`
	Sharpness      float64 `mapstructure:"sharpness"`
	Resolution     int     `mapstructure:"resolution"`
	IterationScale float64 `mapstructure:"iteration_scale"`
}

// New returns a viper instance with all defaults set and environment
// variables bound.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.body_limit", 4*1024*1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("smoothing.strategy", "chaikin")
	v.SetDefault("smoothing.metric", "euclidean")
	v.SetDefault("smoothing.densify", true)
	v.SetDefault("smoothing.rescale", true)
	v.SetDefault("smoothing.sharpness", smooth.DefaultSharpness)
	v.SetDefault("smoothing.resolution", smooth.DefaultResolution)
	v.SetDefault("smoothing.iteration_scale", 10.0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. If file is empty, config.yaml is looked up in
// the working directory and in ./configs, and a missing file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, fmt.Sprintf("server.body_limit must be positive, got %d", c.Server.BodyLimit))
	}
	if _, err := smooth.StrategyByName(c.Smoothing.Strategy); err != nil {
		errs = append(errs, fmt.Sprintf("smoothing.strategy: %v", err))
	}
	if _, err := smooth.MetricByName(c.Smoothing.Metric); err != nil {
		errs = append(errs, fmt.Sprintf("smoothing.metric: %v", err))
	}
	if c.Smoothing.Resolution < 0 {
		errs = append(errs, fmt.Sprintf("smoothing.resolution must not be negative, got %d", c.Smoothing.Resolution))
	}
	if c.Smoothing.IterationScale <= 0 {
		errs = append(errs, fmt.Sprintf("smoothing.iteration_scale must be positive, got %g", c.Smoothing.IterationScale))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Pipeline builds the configured pipeline.
func (s SmoothingConfig) Pipeline() (smooth.Pipeline, error) {
	return s.PipelineFor(s.Strategy)
}

// PipelineFor builds the configured pipeline with a different strategy. An
// empty strategy selects the configured one.
func (s SmoothingConfig) PipelineFor(strategy string) (smooth.Pipeline, error) {
	if strategy == "" {
		strategy = s.Strategy
	}
	sm, err := smooth.StrategyByName(strategy)
	if err != nil {
		return smooth.Pipeline{}, err
	}
	if _, ok := sm.(smooth.CornerCutting); ok && s.IterationScale > 0 {
		sm = smooth.CornerCutting{Iterations: smooth.LinearIterations(s.IterationScale)}
	}
	m, err := smooth.MetricByName(s.Metric)
	if err != nil {
		return smooth.Pipeline{}, err
	}
	return smooth.Pipeline{
		Smoother: sm,
		Metric:   m,
		Densify:  s.Densify,
		Rescale:  s.Rescale,
	}, nil
}

// Params returns the configured default parameters.
func (s SmoothingConfig) Params() smooth.Params {
	return smooth.Params{
		Sharpness:  s.Sharpness,
		Resolution: s.Resolution,
	}.Clamp()
}
