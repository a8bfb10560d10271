package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port               int      `mapstructure:"port"`
	PublicURL          string   `mapstructure:"public_url"` // QR default text and self-reference base
	AdminUser          string   `mapstructure:"admin_user"` // Basic auth; auth disabled if user or pass is unset
	AdminPass          string   `mapstructure:"admin_pass"`
	BehindProxy        bool     `mapstructure:"behind_proxy"` // trust the first reverse-proxy hop for client IP
	DatabasePath       string   `mapstructure:"database_path"`
	LogLevel           string   `mapstructure:"log_level"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	RequestTimeoutSec  int      `mapstructure:"request_timeout_sec"`  // HTTP read/write; 0 = server default
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_sec"` // Graceful shutdown wait
	RateLimitPerMin    int      `mapstructure:"rate_limit_per_min"`   // Per-IP limit on POST /log; 0 = disabled
	MaxBodyBytes       int64    `mapstructure:"max_body_bytes"`       // Max request body for POST /log
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/scantrack/")
	viper.AddConfigPath("$HOME/.scantrack")
	viper.AddConfigPath(".")

	// Defaults
	viper.SetDefault("port", 3000)
	viper.SetDefault("public_url", "")
	viper.SetDefault("admin_user", "")
	viper.SetDefault("admin_pass", "")
	viper.SetDefault("behind_proxy", false)
	viper.SetDefault("database_path", "./events.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("allowed_origins", []string{"*"})
	viper.SetDefault("request_timeout_sec", 15)
	viper.SetDefault("shutdown_timeout_sec", 15)
	viper.SetDefault("rate_limit_per_min", 0) // 0 = disabled
	viper.SetDefault("max_body_bytes", 64*1024)

	// Environment variables: no prefix so the keys resolve against PORT,
	// PUBLIC_URL, ADMIN_USER, ADMIN_PASS, BEHIND_PROXY, DATABASE_PATH, ...
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.PublicURL == "" {
		cfg.PublicURL = fmt.Sprintf("http://localhost:%d", cfg.Port)
	}

	return &cfg, nil
}

// AuthEnabled reports whether the admin credential pair is fully configured.
// Basic-gated routes are open when it is not.
func (c *Config) AuthEnabled() bool {
	return c.AdminUser != "" && c.AdminPass != ""
}
