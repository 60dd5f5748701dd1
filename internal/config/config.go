package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	HTTP       HTTPConfig       `yaml:"http"`
	Admin      AdminConfig      `yaml:"admin"`
	Database   DatabaseConfig   `yaml:"database"`
	Mail       MailConfig       `yaml:"mail"`
	Sheets     SheetsConfig     `yaml:"sheets"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Redis      RedisConfig      `yaml:"redis"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Uploads    UploadsConfig    `yaml:"uploads"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	BaseURL     string `yaml:"base_url"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type AdminConfig struct {
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Email     string `yaml:"email"`
	JWTSecret string `yaml:"jwt_secret"`
}

type DatabaseConfig struct {
	Path   string       `yaml:"path"`
	Backup BackupConfig `yaml:"backup"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	IntervalHours int    `yaml:"interval_hours"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

// MailConfig is optional; an empty host disables the email channel.
type MailConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	From         string `yaml:"from"`
	OperatorAddr string `yaml:"operator_addr"`
}

func (m MailConfig) Enabled() bool { return m.Host != "" && m.OperatorAddr != "" }

// SheetsConfig is optional; an empty spreadsheet id disables the channel.
type SheetsConfig struct {
	SpreadsheetID   string   `yaml:"spreadsheet_id"`
	CredentialsFile string   `yaml:"credentials_file"`
	BookingTabs     []string `yaml:"booking_tabs"`
	ErrorTab        string   `yaml:"error_tab"`
}

func (s SheetsConfig) Enabled() bool { return s.SpreadsheetID != "" && s.CredentialsFile != "" }

// TelegramConfig is optional; an empty token disables the operator ping.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

func (t TelegramConfig) Enabled() bool { return t.BotToken != "" && t.ChatID != 0 }

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type UploadsConfig struct {
	Dir       string `yaml:"dir"`
	PublicURL string `yaml:"public_url"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

// Load reads the YAML config, expanding ${VAR} references from the
// environment. A .env file alongside the process is loaded first if present.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return errors.New("admin username and password are required")
	}
	if c.Admin.JWTSecret == "" {
		return errors.New("admin jwt secret is required")
	}
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}
	if c.Sheets.Enabled() && c.Sheets.CredentialsFile == "" {
		return errors.New("sheets credentials file is required when spreadsheet id is set")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "tripdesk"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.From == "" {
		c.Mail.From = c.Mail.Username
	}
	if len(c.Sheets.BookingTabs) == 0 {
		c.Sheets.BookingTabs = []string{"Bookings", "Заявки", "Sheet1"}
	}
	if c.Sheets.ErrorTab == "" {
		c.Sheets.ErrorTab = "Errors"
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 2
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "data/uploads"
	}
	if c.Uploads.PublicURL == "" {
		c.Uploads.PublicURL = "/uploads"
	}
	if c.Database.Backup.IntervalHours == 0 {
		c.Database.Backup.IntervalHours = 24
	}
	if c.Database.Backup.RetentionDays == 0 {
		c.Database.Backup.RetentionDays = 14
	}
	if c.Database.Backup.StoragePath == "" {
		c.Database.Backup.StoragePath = "data/backups"
	}
}
