package config

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{"morning", "09:00", 9, 0, false},
		{"end of day", "23:59", 23, 59, false},
		{"single digit hour", "7:05", 7, 5, false},
		{"midnight", "00:00", 0, 0, false},
		{"missing minutes", "9", 0, 0, true},
		{"hour out of range", "24:00", 0, 0, true},
		{"minute out of range", "09:60", 0, 0, true},
		{"not a number", "ab:cd", 0, 0, true},
		{"empty", "", 0, 0, true},
		{"too many parts", "09:00:00", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimeOfDay(%q) expected error, got %d:%d", tt.input, hour, minute)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) unexpected error: %v", tt.input, err)
			}
			if hour != tt.hour || minute != tt.minute {
				t.Errorf("ParseTimeOfDay(%q) = %d:%d, want %d:%d", tt.input, hour, minute, tt.hour, tt.minute)
			}
		})
	}
}

func TestChannelAllowed(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		channel string
		want    bool
	}{
		{"empty list allows any", nil, "@random", true},
		{"listed channel", []string{"@random", "@dev"}, "@dev", true},
		{"unlisted channel", []string{"@random", "@dev"}, "@secrets", false},
		{"empty channel against list", []string{"@random"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := BotConfig{AllowedChannels: tt.allowed}
			if got := cfg.ChannelAllowed(tt.channel); got != tt.want {
				t.Errorf("ChannelAllowed(%q) = %v, want %v", tt.channel, got, tt.want)
			}
		})
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DEFAULT_CHANNEL_ID", "@random")

	_, err := Load()
	if !errors.Is(err, ErrEmptyBotToken) {
		t.Errorf("Load() error = %v, want ErrEmptyBotToken", err)
	}
}

func TestLoadMissingChannel(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("DEFAULT_CHANNEL_ID", "")

	_, err := Load()
	if !errors.Is(err, ErrEmptyChannel) {
		t.Errorf("Load() error = %v, want ErrEmptyChannel", err)
	}
}

func TestLoadInvalidPostTime(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("DEFAULT_CHANNEL_ID", "@random")
	t.Setenv("POST_TIME", "25:99")

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid POST_TIME")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("DEFAULT_CHANNEL_ID", "@random")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Schedule.PostTime != "09:00" {
		t.Errorf("Expected default post time '09:00', got %q", cfg.Schedule.PostTime)
	}
	if cfg.Schedule.PollInterval != 30*time.Second {
		t.Errorf("Expected default poll interval 30s, got %v", cfg.Schedule.PollInterval)
	}
	if cfg.Schedule.JokeWeight != 0.6 {
		t.Errorf("Expected default joke weight 0.6, got %v", cfg.Schedule.JokeWeight)
	}
	if cfg.Bot.ParseMode != "Markdown" {
		t.Errorf("Expected default parse mode 'Markdown', got %q", cfg.Bot.ParseMode)
	}
	if cfg.Generator.APIKey != "" {
		t.Errorf("Expected generator disabled by default, got key %q", cfg.Generator.APIKey)
	}
	if cfg.Generator.Timeout != 30*time.Second {
		t.Errorf("Expected default generator timeout 30s, got %v", cfg.Generator.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("DEFAULT_CHANNEL_ID", "@random")
	t.Setenv("POST_TIME", "17:30")
	t.Setenv("CHANNEL_ALLOWLIST", "@random,@dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Schedule.PostTime != "17:30" {
		t.Errorf("Expected post time '17:30', got %q", cfg.Schedule.PostTime)
	}
	if len(cfg.Bot.AllowedChannels) != 2 {
		t.Fatalf("Expected 2 allowed channels, got %v", cfg.Bot.AllowedChannels)
	}
	if !cfg.Bot.ChannelAllowed("@dev") || cfg.Bot.ChannelAllowed("@other") {
		t.Error("Allow-list not applied from CHANNEL_ALLOWLIST")
	}
}
