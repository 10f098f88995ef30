package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath         = "config/config.yaml"
	DefaultPort         = 8080
	DefaultTickMs       = 250
	DefaultTimeoutMs    = 12000
	DefaultBurstDelayMs = 250
	DefaultTarget       = "2026-03-14T12:30:00-05:00"

	ModeJSONP = "jsonp"
	ModeJSON  = "json"
)

type WeddingConfig struct {
	Couple    string `yaml:"couple"`
	Date      string `yaml:"date_label"`
	Target    string `yaml:"target"` // RFC3339 with offset
	TickMs    int    `yaml:"tick_ms"`
	Venue     string `yaml:"venue"`
	Address   string `yaml:"address"`
	MapsURL   string `yaml:"maps_url"`
	Ceremony  string `yaml:"ceremony_time"`
	Reception string `yaml:"reception_time"`
	Verse     string `yaml:"verse"`
	Deadline  string `yaml:"rsvp_deadline"`
	Transport string `yaml:"transport_url"`
	DressCode string `yaml:"dress_code"`
	Tips      []Tip  `yaml:"tips"`
	Gifts     Gifts  `yaml:"gifts"`
}

type Tip struct {
	Icon  string `yaml:"icon" json:"icon"`
	Title string `yaml:"title" json:"title"`
	Text  string `yaml:"text" json:"text"`
}

type Gifts struct {
	Message  string        `yaml:"message" json:"message"`
	Accounts []BankAccount `yaml:"accounts" json:"accounts"`
}

type BankAccount struct {
	Bank   string `yaml:"bank" json:"bank"`
	Holder string `yaml:"holder" json:"holder"`
	Type   string `yaml:"type" json:"type"`
	ID     string `yaml:"id_number" json:"id_number"`
	Number string `yaml:"number" json:"number"`
	Email  string `yaml:"email" json:"email,omitempty"`
}

type RSVPConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Mode         string `yaml:"mode"` // jsonp | json
	TimeoutMs    int    `yaml:"timeout_ms"`
	BurstDelayMs int    `yaml:"burst_delay_ms"`
	DryRun       bool   `yaml:"dry_run"`
}

type PassConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Secret   string `yaml:"secret"`
	FontPath string `yaml:"font_path"`
	BaseURL  string `yaml:"base_url"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	NotifyEmail  string `yaml:"notify_email"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Environment string `yaml:"environment"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Wedding  WeddingConfig  `yaml:"wedding"`
	RSVP     RSVPConfig     `yaml:"rsvp"`
	Pass     PassConfig     `yaml:"pass"`
	Email    EmailConfig    `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
	Log      LogConfig      `yaml:"log"`
}

// LoadConfig reads the YAML file at path, applies .env and environment
// overrides and fills defaults. A missing file is not an error: the
// defaults plus environment describe a usable dry-run setup.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	// .env is optional; real environment wins over it
	_ = godotenv.Load()

	var cfg Config
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT env variable %q", v)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("RSVP_ENDPOINT"); v != "" {
		cfg.RSVP.Endpoint = v
	}
	if v := os.Getenv("PASS_SECRET"); v != "" {
		cfg.Pass.Secret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Wedding.Target == "" {
		cfg.Wedding.Target = DefaultTarget
	}
	if cfg.Wedding.TickMs == 0 {
		cfg.Wedding.TickMs = DefaultTickMs
	}
	if cfg.RSVP.Mode == "" {
		cfg.RSVP.Mode = ModeJSONP
	}
	if cfg.RSVP.TimeoutMs == 0 {
		cfg.RSVP.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.RSVP.BurstDelayMs == 0 {
		cfg.RSVP.BurstDelayMs = DefaultBurstDelayMs
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Environment == "" {
		cfg.Log.Environment = "development"
	}
}

// TargetTime parses the configured target moment.
func (c *Config) TargetTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.Wedding.Target)
	if err != nil {
		return time.Time{}, fmt.Errorf("wedding.target: %w", err)
	}
	return t, nil
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Wedding.TickMs) * time.Millisecond
}

func (c *Config) RSVPTimeout() time.Duration {
	return time.Duration(c.RSVP.TimeoutMs) * time.Millisecond
}

func (c *Config) BurstDelay() time.Duration {
	return time.Duration(c.RSVP.BurstDelayMs) * time.Millisecond
}
