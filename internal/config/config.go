// Package config loads the service settings from the environment and an
// optional showcase.yaml.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"port"`
	GinMode      string `mapstructure:"gin_mode"`
	DatabasePath string `mapstructure:"database_path"`

	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`

	// CarouselInterval overrides every deck's autoplay interval when set.
	CarouselInterval time.Duration `mapstructure:"carousel_interval"`
	MountTTL         time.Duration `mapstructure:"mount_ttl"`
	SweepInterval    time.Duration `mapstructure:"sweep_interval"`

	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var keys = []string{
	"port", "gin_mode", "database_path",
	"admin_username", "admin_password",
	"carousel_interval", "mount_ttl", "sweep_interval",
	"allowed_origins",
}

// Load reads settings from the environment (PORT, DATABASE_PATH, ...) and
// from showcase.yaml in dir when present. Environment wins.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", k, err)
		}
	}

	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("database_path", "data/showcase.db")
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "admin123")
	v.SetDefault("mount_ttl", 10*time.Minute)
	v.SetDefault("sweep_interval", time.Minute)

	v.SetConfigName("showcase")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Println("showcase.yaml not found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.AdminPassword == "admin123" {
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("config: port is required")
	}
	if c.CarouselInterval < 0 {
		return fmt.Errorf("config: carousel_interval must not be negative, got %s", c.CarouselInterval)
	}
	if c.MountTTL < 0 || c.SweepInterval < 0 {
		return errors.New("config: mount_ttl and sweep_interval must not be negative")
	}
	return nil
}
