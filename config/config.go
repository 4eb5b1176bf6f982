package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	ResetURL string `mapstructure:"reset_url"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Redis     RedisConfig     `mapstructure:"redis"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// envOverrides are applied on top of the file-based configuration so a
// containerized deployment can run without a config file at all.
type envOverrides struct {
	Port        int     `envconfig:"PORT"`
	DBHost      string  `envconfig:"DB_HOST"`
	DBPort      int     `envconfig:"DB_PORT"`
	DBUser      string  `envconfig:"DB_USER"`
	DBPassword  string  `envconfig:"DB_PASSWORD"`
	DBName      string  `envconfig:"DB_NAME"`
	DBSSLMode   string  `envconfig:"DB_SSLMODE"`
	JWTSecret   string  `envconfig:"JWT_SECRET"`
	CORSOrigin  string  `envconfig:"CORS_ORIGIN"`
	RedisURL    string  `envconfig:"REDIS_URL"`
	SMTPHost    string  `envconfig:"SMTP_HOST"`
	SMTPPort    int     `envconfig:"SMTP_PORT"`
	SMTPUser    string  `envconfig:"SMTP_USER"`
	SMTPPass    string  `envconfig:"SMTP_PASS"`
	MailFrom    string  `envconfig:"MAIL_FROM"`
	ResetURL    string  `envconfig:"RESET_URL"`
	RateRPS     float64 `envconfig:"RATE_LIMIT_RPS"`
	RateBurst   int     `envconfig:"RATE_LIMIT_BURST"`
	LogLevel    string  `envconfig:"LOG_LEVEL"`
	LogPretty   bool    `envconfig:"LOG_PRETTY"`
}

func setDefaults() {
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.timeout", "30s")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.name", "clinic")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.expiry_hours", 24)
	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:8080"})
	viper.SetDefault("rate_limit.rps", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)
}

// Load reads config.yaml (optional) and applies environment overrides.
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("clinic", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	applyOverrides(&cfg, &env)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (CLINIC_JWT_SECRET)")
	}

	return &cfg, nil
}

func applyOverrides(cfg *Config, env *envOverrides) {
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.DBHost != "" {
		cfg.Database.Host = env.DBHost
	}
	if env.DBPort != 0 {
		cfg.Database.Port = env.DBPort
	}
	if env.DBUser != "" {
		cfg.Database.User = env.DBUser
	}
	if env.DBPassword != "" {
		cfg.Database.Password = env.DBPassword
	}
	if env.DBName != "" {
		cfg.Database.Name = env.DBName
	}
	if env.DBSSLMode != "" {
		cfg.Database.SSLMode = env.DBSSLMode
	}
	if env.JWTSecret != "" {
		cfg.JWT.Secret = env.JWTSecret
	}
	if env.CORSOrigin != "" {
		cfg.CORS.AllowedOrigins = []string{env.CORSOrigin}
	}
	if env.RedisURL != "" {
		cfg.Redis.URL = env.RedisURL
	}
	if env.SMTPHost != "" {
		cfg.SMTP.Host = env.SMTPHost
	}
	if env.SMTPPort != 0 {
		cfg.SMTP.Port = env.SMTPPort
	}
	if env.SMTPUser != "" {
		cfg.SMTP.Username = env.SMTPUser
	}
	if env.SMTPPass != "" {
		cfg.SMTP.Password = env.SMTPPass
	}
	if env.MailFrom != "" {
		cfg.SMTP.From = env.MailFrom
	}
	if env.ResetURL != "" {
		cfg.SMTP.ResetURL = env.ResetURL
	}
	if env.RateRPS != 0 {
		cfg.RateLimit.RPS = env.RateRPS
	}
	if env.RateBurst != 0 {
		cfg.RateLimit.Burst = env.RateBurst
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogPretty {
		cfg.Log.Pretty = true
	}
}
