package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Breaker    BreakerConfig    `mapstructure:"breaker"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Guardrails GuardrailsConfig `mapstructure:"guardrails"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type BreakerConfig struct {
	MaxFailures     uint32 `mapstructure:"max_failures"`
	CooldownSeconds int    `mapstructure:"cooldown_seconds"`
}

func (c BreakerConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

type BatchConfig struct {
	ItemDelayMs              int     `mapstructure:"item_delay_ms"`
	Offline                  bool    `mapstructure:"offline"`
	CrossValidationThreshold float64 `mapstructure:"cross_validation_threshold"`
}

func (c BatchConfig) ItemDelay() time.Duration {
	return time.Duration(c.ItemDelayMs) * time.Millisecond
}

type GuardrailsConfig struct {
	Enabled  bool                   `mapstructure:"enabled"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := loadConfigFile(configPath, "config", &cfg); err != nil {
		return nil, fmt.Errorf("could not load main config file: %w", err)
	}

	var providerCfg ProvidersConfig
	if err := loadConfigFile(configPath, "providers", &providerCfg); err != nil {
		return nil, fmt.Errorf("could not load providers config file: %w", err)
	}
	cfg.Providers = providerCfg

	setDefaultValues(&cfg)

	return &cfg, nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	v := viper.New()
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Breaker.MaxFailures == 0 {
		cfg.Breaker.MaxFailures = 5
	}
	if cfg.Breaker.CooldownSeconds == 0 {
		cfg.Breaker.CooldownSeconds = 60
	}
	if cfg.Batch.ItemDelayMs == 0 {
		cfg.Batch.ItemDelayMs = 1000
	}
	if cfg.Batch.CrossValidationThreshold == 0 {
		cfg.Batch.CrossValidationThreshold = 80
	}
}
