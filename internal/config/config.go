package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	GinMode      string
	Timezone     string
	BaseURL      string
	OpenAIAPIKey string

	DB        DBConfig
	Redis     RedisConfig
	Session   SessionConfig
	Log       LogConfig
	Email     EmailConfig
	Reminders ReminderConfig
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	// Path is the database file used by the sqlite driver.
	Path     string
	LogLevel string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	// Channel is the pub/sub channel used to fan realtime events out across instances.
	Channel string
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type SessionConfig struct {
	Secret string
	Store  string
}

type LogConfig struct {
	Level  string
	Format string
}

type EmailConfig struct {
	Provider       string
	From           string
	SendGridKey    string
	MailgunDomain  string
	MailgunKey     string
	BreakerTimeout time.Duration
}

type ReminderConfig struct {
	Enabled  bool
	Schedule string
}

// Load reads configuration from an optional file and the environment.
// Environment variables use the upper-cased key with dots replaced by
// underscores, e.g. db.host -> DB_HOST.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:         v.GetString("port"),
		GinMode:      v.GetString("gin_mode"),
		Timezone:     v.GetString("timezone"),
		BaseURL:      strings.TrimRight(v.GetString("base_url"), "/"),
		OpenAIAPIKey: v.GetString("openai_api_key"),
		DB: DBConfig{
			Driver:   v.GetString("db.driver"),
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			Path:     v.GetString("db.path"),
			LogLevel: v.GetString("db.log_level"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetString("redis.port"),
			Password: v.GetString("redis.password"),
			Channel:  v.GetString("redis.channel"),
		},
		Session: SessionConfig{
			Secret: v.GetString("session.secret"),
			Store:  v.GetString("session.store"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Email: EmailConfig{
			Provider:       v.GetString("email.provider"),
			From:           v.GetString("email.from"),
			SendGridKey:    v.GetString("email.sendgrid_key"),
			MailgunDomain:  v.GetString("email.mailgun_domain"),
			MailgunKey:     v.GetString("email.mailgun_key"),
			BreakerTimeout: v.GetDuration("email.breaker_timeout"),
		},
		Reminders: ReminderConfig{
			Enabled:  v.GetBool("reminders.enabled"),
			Schedule: v.GetString("reminders.schedule"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location returns the configured default timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DB.Driver)
	}
	switch c.Email.Provider {
	case "log", "sendgrid", "mailgun":
	default:
		return fmt.Errorf("unsupported email provider %q", c.Email.Provider)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("base_url", "http://localhost:5173")
	v.SetDefault("openai_api_key", "")

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "3306")
	v.SetDefault("db.user", "planner")
	v.SetDefault("db.password", "plannerpassword")
	v.SetDefault("db.name", "planner")
	v.SetDefault("db.path", "planner.db")
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.channel", "planner:realtime")

	v.SetDefault("session.secret", "default-secret-key-change-me")
	v.SetDefault("session.store", "redis")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("email.provider", "log")
	v.SetDefault("email.from", "no-reply@planner.local")
	v.SetDefault("email.sendgrid_key", "")
	v.SetDefault("email.mailgun_domain", "")
	v.SetDefault("email.mailgun_key", "")
	v.SetDefault("email.breaker_timeout", "30s")

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 0 9 * * *")
}
