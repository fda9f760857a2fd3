package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration for the dashboard service.
type Config struct {
	Server struct {
		Addr            string        `mapstructure:"addr"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`
	DB struct {
		DSN             string        `mapstructure:"dsn"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		MaxIdleConns    int           `mapstructure:"max_idle_conns"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	} `mapstructure:"db"`
	Log struct {
		Level string `mapstructure:"level"`
		JSON  bool   `mapstructure:"json"`
	} `mapstructure:"log"`
	Dashboard struct {
		TopUsers          int           `mapstructure:"top_users"`
		TopReturningUsers int           `mapstructure:"top_returning_users"`
		RecentActivity    int           `mapstructure:"recent_activity"`
		LogLookback       time.Duration `mapstructure:"log_lookback"`
	} `mapstructure:"dashboard"`
}

const EnvPrefix = "DASHBOARD"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("dashboard.top_users", 5)
	v.SetDefault("dashboard.top_returning_users", 10)
	v.SetDefault("dashboard.recent_activity", 10)
	v.SetDefault("dashboard.log_lookback", time.Duration(0))
}

// Load reads the configuration from path (or ./config.yaml, ./config/config.yaml
// when path is empty) and the environment. A missing default file is not an
// error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Dashboard.TopUsers < 0 || c.Dashboard.TopReturningUsers < 0 || c.Dashboard.RecentActivity < 0 {
		return errors.New("dashboard limits must not be negative")
	}
	if c.Dashboard.LogLookback < 0 {
		return errors.New("dashboard.log_lookback must not be negative")
	}
	return nil
}
