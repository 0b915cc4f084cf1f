package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Classifier    ClassifierConfig    `mapstructure:"classifier"`
	Moderation    ModerationConfig    `mapstructure:"moderation"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Audit         AuditConfig         `mapstructure:"audit"`
	Auth          AuthConfig          `mapstructure:"auth"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Host        string `mapstructure:"host"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// ClassifierConfig selects and tunes the external semantic classification
// service used by Layer 2 and the image path.
type ClassifierConfig struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type ModerationConfig struct {
	StrikeThreshold    int           `mapstructure:"strike_threshold"`
	StrikeWindow       time.Duration `mapstructure:"strike_window"`
	SuspensionDuration time.Duration `mapstructure:"suspension_duration"`
	PatternLookback    time.Duration `mapstructure:"pattern_lookback"`
	PatternThreshold   int           `mapstructure:"pattern_threshold"`
	ContextWindowSize  int           `mapstructure:"context_window_size"`
	SnippetLimit       int           `mapstructure:"snippet_limit"`
}

type NotificationsConfig struct {
	DispatchInterval time.Duration `mapstructure:"dispatch_interval"`
	MailerURL        string        `mapstructure:"mailer_url"`
	MailerAPIKey     string        `mapstructure:"mailer_api_key"`
}

type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	Topic   string `mapstructure:"topic"`
}

type AuthConfig struct {
	AdminJWTSecret string `mapstructure:"admin_jwt_secret"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("⚠️ Warning: Could not load main config file: %v", err)
	}

	setDefaultValues()

	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Database.SSLMode == "" {
		globalConfig.Database.SSLMode = "disable"
	}
	if globalConfig.Classifier.Timeout == 0 {
		globalConfig.Classifier.Timeout = 5 * time.Second
	}
	if globalConfig.Moderation.StrikeThreshold == 0 {
		globalConfig.Moderation.StrikeThreshold = 3
	}
	if globalConfig.Moderation.StrikeWindow == 0 {
		globalConfig.Moderation.StrikeWindow = 24 * time.Hour
	}
	if globalConfig.Moderation.SuspensionDuration == 0 {
		globalConfig.Moderation.SuspensionDuration = 24 * time.Hour
	}
	if globalConfig.Moderation.PatternLookback == 0 {
		globalConfig.Moderation.PatternLookback = 7 * 24 * time.Hour
	}
	if globalConfig.Moderation.PatternThreshold == 0 {
		globalConfig.Moderation.PatternThreshold = 3
	}
	if globalConfig.Moderation.ContextWindowSize == 0 {
		globalConfig.Moderation.ContextWindowSize = 5
	}
	if globalConfig.Moderation.SnippetLimit == 0 {
		globalConfig.Moderation.SnippetLimit = 120
	}
	if globalConfig.Notifications.DispatchInterval == 0 {
		globalConfig.Notifications.DispatchInterval = 30 * time.Second
	}
}

func GetConfig() *Config {
	return &globalConfig
}
