package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Bot       BotConfig
	Database  DatabaseConfig
	Retention RetentionConfig
	Browser   BrowserConfig
	Log       LogConfig
}

// ServerConfig configures the read-only orders API.
type ServerConfig struct {
	Port          int
	AllowedOrigin string
}

// BotConfig configures the chat gateway binary.
type BotConfig struct {
	Port      int
	DevUserID string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RetentionConfig drives the delivered-order cleanup job.
type RetentionConfig struct {
	Days          int
	SweepInterval time.Duration
}

// BrowserConfig drives the paginated order browser.
type BrowserConfig struct {
	PageSize    int
	IdleTimeout time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGIN", "krichi.xyz")
	viper.SetDefault("BOT_PORT", 8090)
	viper.SetDefault("DEV_USER_ID", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "ordertrack")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "ordertrack")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("RETENTION_DAYS", 25)
	viper.SetDefault("SWEEP_INTERVAL", "24h")
	viper.SetDefault("BROWSER_PAGE_SIZE", 5)
	viper.SetDefault("BROWSER_IDLE_TIMEOUT", "120s")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}

	sweepInterval, err := time.ParseDuration(viper.GetString("SWEEP_INTERVAL"))
	if err != nil {
		return nil, err
	}

	idleTimeout, err := time.ParseDuration(viper.GetString("BROWSER_IDLE_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:          viper.GetInt("SERVER_PORT"),
			AllowedOrigin: viper.GetString("ALLOWED_ORIGIN"),
		},
		Bot: BotConfig{
			Port:      viper.GetInt("BOT_PORT"),
			DevUserID: viper.GetString("DEV_USER_ID"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Retention: RetentionConfig{
			Days:          viper.GetInt("RETENTION_DAYS"),
			SweepInterval: sweepInterval,
		},
		Browser: BrowserConfig{
			PageSize:    viper.GetInt("BROWSER_PAGE_SIZE"),
			IdleTimeout: idleTimeout,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
