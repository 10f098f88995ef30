package config

import (
	"fmt"
	"net/url"
)

// Validate checks configuration correctness.
// It performs declarative validation only and never mutates cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if _, err := cfg.TargetTime(); err != nil {
		return err
	}
	if cfg.Wedding.TickMs <= 0 {
		return fmt.Errorf("wedding.tick_ms must be > 0, got %d", cfg.Wedding.TickMs)
	}

	switch cfg.RSVP.Mode {
	case ModeJSONP, ModeJSON:
	default:
		return fmt.Errorf("rsvp.mode must be %q or %q, got %q", ModeJSONP, ModeJSON, cfg.RSVP.Mode)
	}
	if cfg.RSVP.TimeoutMs <= 0 {
		return fmt.Errorf("rsvp.timeout_ms must be > 0, got %d", cfg.RSVP.TimeoutMs)
	}
	if cfg.RSVP.BurstDelayMs < 0 {
		return fmt.Errorf("rsvp.burst_delay_ms must be >= 0, got %d", cfg.RSVP.BurstDelayMs)
	}
	if cfg.RSVP.Endpoint != "" {
		u, err := url.Parse(cfg.RSVP.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("rsvp.endpoint must be an absolute http(s) URL, got %q", cfg.RSVP.Endpoint)
		}
	}

	if cfg.Pass.Enabled && cfg.Pass.Secret == "" {
		return fmt.Errorf("pass.secret is required when pass.enabled is set")
	}
	// an empty endpoint confirms every code; only sign passes for that when asked to
	if cfg.Pass.Enabled && cfg.RSVP.Endpoint == "" && !cfg.RSVP.DryRun {
		return fmt.Errorf("pass.enabled requires rsvp.endpoint or an explicit rsvp.dry_run")
	}

	if cfg.Email.SMTPHost != "" && cfg.Email.NotifyEmail == "" {
		return fmt.Errorf("email.notify_email is required when email.smtp_host is set")
	}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}

	return nil
}
