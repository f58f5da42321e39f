package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	DSN             string `yaml:"url"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxIdleSec  int    `yaml:"conn_max_idle_seconds"`
	ConnMaxLifeSec  int    `yaml:"conn_max_life_seconds"`
	QueryTimeoutSec int    `yaml:"query_timeout_seconds"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type DispatchConfig struct {
	DailyLimit  int  `yaml:"daily_limit"`
	LogFailures bool `yaml:"log_failures"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
	Dispatch DispatchConfig `yaml:"dispatch"`
	App      struct {
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"app"`
}

// LoadConfig reads config/config.yaml and fails when a required secret is
// missing. There are deliberately no fallback values for the DSN, the JWT
// secret or the SMTP credentials.
func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	if cfg.Email.SMTPHost == "" || cfg.Email.SMTPUser == "" || cfg.Email.SMTPPassword == "" {
		return nil, fmt.Errorf("email smtp settings are required")
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = cfg.Email.SMTPUser
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 2
	}
	if cfg.Database.ConnMaxIdleSec == 0 {
		cfg.Database.ConnMaxIdleSec = 30
	}
	if cfg.Database.ConnMaxLifeSec == 0 {
		cfg.Database.ConnMaxLifeSec = 1800
	}
	if cfg.Database.QueryTimeoutSec == 0 {
		cfg.Database.QueryTimeoutSec = 10
	}
	if cfg.Dispatch.DailyLimit == 0 {
		cfg.Dispatch.DailyLimit = 10
	}
	if cfg.App.FrontendURL == "" {
		cfg.App.FrontendURL = "http://localhost:5173"
	}

	return &cfg, nil
}
