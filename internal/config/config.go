package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var (
	ErrEmptyBotToken = errors.New("telegram bot token is required")
	ErrEmptyChannel  = errors.New("default channel is required")
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	Bot       BotConfig       `yaml:"bot"`
	Generator GeneratorConfig `yaml:"generator"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Health    HealthConfig    `yaml:"health"`
}

type AppConfig struct {
	Name        string `yaml:"name" env:"APP_NAME" env-default:"daily-bot"`
	Environment string `yaml:"environment" env:"APP_ENVIRONMENT" env-default:"production"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFile     string `yaml:"log_file" env:"LOG_FILE" env-default:"daily-bot.log"`
}

type BotConfig struct {
	Token           string   `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	ParseMode       string   `yaml:"parse_mode" env:"BOT_PARSE_MODE" env-default:"Markdown"`
	DefaultChannel  string   `yaml:"default_channel" env:"DEFAULT_CHANNEL_ID"`
	AllowedChannels []string `yaml:"allowed_channels" env:"CHANNEL_ALLOWLIST" env-separator:","`
}

// ChannelAllowed reports whether the channel may be posted to. An empty
// allow-list permits any channel.
func (b BotConfig) ChannelAllowed(channel string) bool {
	if len(b.AllowedChannels) == 0 {
		return true
	}
	for _, c := range b.AllowedChannels {
		if c == channel {
			return true
		}
	}
	return false
}

type GeneratorConfig struct {
	// APIKey is optional. When empty the generation path is disabled and
	// every post comes from the built-in fallback tables.
	APIKey    string        `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	Model     string        `yaml:"model" env:"GENERATOR_MODEL" env-default:"claude-3-7-sonnet-latest"`
	Timeout   time.Duration `yaml:"timeout" env:"GENERATOR_TIMEOUT" env-default:"30s"`
	MaxTokens int           `yaml:"max_tokens" env:"GENERATOR_MAX_TOKENS" env-default:"150"`
}

type ScheduleConfig struct {
	PostTime     string        `yaml:"post_time" env:"POST_TIME" env-default:"09:00"`
	PollInterval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL" env-default:"30s"`
	JokeWeight   float64       `yaml:"joke_weight" env:"JOKE_WEIGHT" env-default:"0.6"`
}

type HealthConfig struct {
	Port     int    `yaml:"port" env:"HEALTH_PORT" env-default:"8080"`
	Endpoint string `yaml:"endpoint" env:"HEALTH_ENDPOINT" env-default:"/healthz"`
}

func Load() (*Config, error) {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.Bot.Token == "" {
		return nil, ErrEmptyBotToken
	}

	if cfg.Bot.DefaultChannel == "" {
		return nil, ErrEmptyChannel
	}

	if _, _, err := ParseTimeOfDay(cfg.Schedule.PostTime); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseTimeOfDay parses a 24h "HH:MM" wall-clock time.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q: want 00-23", s)
	}

	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q: want 00-59", s)
	}

	return hour, minute, nil
}
