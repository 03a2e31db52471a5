package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	NATS          NATSConfig          `mapstructure:"nats"`
	Valkey        ValkeyConfig        `mapstructure:"valkey"`
	Telemetry     TelemetryConfig     `mapstructure:"telemetry"`
	Mail          MailConfig          `mapstructure:"mail"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	BaseURL       string              `mapstructure:"base_url"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// MailConfig configures the SendGrid mailer. An empty APIKey is valid and
// downgrades every send to a logged no-op.
type MailConfig struct {
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"`
}

// NotificationConfig configures the scheduled sweep.
type NotificationConfig struct {
	Enabled  bool       `mapstructure:"enabled"`
	Schedule string     `mapstructure:"schedule"`
	Area     AreaConfig `mapstructure:"area"`
}

// AreaConfig is the rectangular notification area.
type AreaConfig struct {
	MinLat float64 `mapstructure:"min_lat"`
	MaxLat float64 `mapstructure:"max_lat"`
	MinLng float64 `mapstructure:"min_lng"`
	MaxLng float64 `mapstructure:"max_lng"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "aerowatch")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "aerowatch")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("mail.api_key", "")
	v.SetDefault("mail.from", "noreply@aeroanalytics.com")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("notifications.enabled", false)
	// Seconds-resolution cron expression: daily at 09:00.
	v.SetDefault("notifications.schedule", "0 0 9 * * *")
	// Default area approximates metropolitan Vancouver.
	v.SetDefault("notifications.area.min_lat", 49.0)
	v.SetDefault("notifications.area.max_lat", 49.5)
	v.SetDefault("notifications.area.min_lng", -123.5)
	v.SetDefault("notifications.area.max_lng", -123.0)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: AEROWATCH_NOTIFICATIONS_ENABLED → notifications.enabled
	v.SetEnvPrefix("AEROWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if c.Mail.From == "" {
		errs = append(errs, "mail.from is required")
	}
	if c.BaseURL == "" {
		errs = append(errs, "base_url is required")
	}
	if c.Notifications.Schedule == "" {
		errs = append(errs, "notifications.schedule is required")
	}
	if c.Notifications.Area.MinLat > c.Notifications.Area.MaxLat {
		errs = append(errs, "notifications.area.min_lat must not exceed max_lat")
	}
	if c.Notifications.Area.MinLng > c.Notifications.Area.MaxLng {
		errs = append(errs, "notifications.area.min_lng must not exceed max_lng")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
