package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/novapool/internal/bufferpool"
	"github.com/tuannm99/novapool/internal/logger"
	"github.com/tuannm99/novapool/internal/telemetry"
)

const envPrefix = "NOVAPOOL"

var ErrInvalidConfig = errors.New("config: invalid value")

type NovaPoolConfig struct {
	AppName  string `mapstructure:"app_name"`
	PageFile string `mapstructure:"page_file"`
	Frames   int    `mapstructure:"frames"`
	Strategy string `mapstructure:"strategy"`
	LRUK     int    `mapstructure:"lru_k"`

	Log struct {
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		OutputFile string `mapstructure:"output_file"`
	} `mapstructure:"log"`

	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Addr    string `mapstructure:"addr"`
	} `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novapool")
	v.SetDefault("page_file", "novapool.bin")
	v.SetDefault("frames", 16)
	v.SetDefault("strategy", "lru")
	v.SetDefault("lru_k", bufferpool.DefaultLRUK)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "stderr")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", ":9464")
}

// LoadConfig reads the YAML file at path (skipped when path is empty) and
// applies NOVAPOOL_* environment overrides, e.g. NOVAPOOL_LOG_LEVEL.
func LoadConfig(path string) (*NovaPoolConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaPoolConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *NovaPoolConfig) Validate() error {
	if c.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidConfig, c.Frames)
	}
	if _, err := bufferpool.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.LRUK < 1 {
		return fmt.Errorf("%w: lru_k must be at least 1, got %d", ErrInvalidConfig, c.LRUK)
	}
	return nil
}

// PoolStrategy returns the configured replacement strategy.
func (c *NovaPoolConfig) PoolStrategy() bufferpool.Strategy {
	s, err := bufferpool.ParseStrategy(c.Strategy)
	if err != nil {
		return bufferpool.StrategyLRU
	}
	return s
}

func (c *NovaPoolConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		OutputFile: c.Log.OutputFile,
		Service:    c.AppName,
	}
}

func (c *NovaPoolConfig) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		Enabled:     c.Metrics.Enabled,
		ServiceName: c.AppName,
		Addr:        c.Metrics.Addr,
	}
}
