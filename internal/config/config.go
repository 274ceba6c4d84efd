package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
)

type Config struct {
	Port     string
	FilesDir string

	OpenAI   OpenAIConfig
	Persona  PersonaConfig
	HTTP     HTTPConfig
	Telegram TelegramConfig
	S3       S3Config
}

type OpenAIConfig struct {
	APIKey    string
	BaseURL   string
	ChatModel string
	STTModel  string
	TTSModel  string
	TTSVoice  string
}

type PersonaConfig struct {
	File string
}

type HTTPConfig struct {
	RateLimitPerMinute   int
	RedactUpstreamErrors bool
}

// Alerts are enabled only when both fields are set.
type TelegramConfig struct {
	Token  string
	ChatID int64
}

func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

// Archive is enabled only when endpoint and bucket are set.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     os.Getenv("PORT"),
		FilesDir: os.Getenv("FILES_ROOT"),
		OpenAI: OpenAIConfig{
			APIKey:    os.Getenv("OPENAI_API_KEY"),
			BaseURL:   os.Getenv("OPENAI_BASE_URL"),
			ChatModel: os.Getenv("CHAT_MODEL"),
			STTModel:  os.Getenv("STT_MODEL"),
			TTSModel:  os.Getenv("TTS_MODEL"),
			TTSVoice:  os.Getenv("TTS_VOICE"),
		},
		Persona: PersonaConfig{
			File: os.Getenv("PERSONA_FILE"),
		},
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_ALERT_TOKEN"),
		},
		S3: S3Config{
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    os.Getenv("S3_REGION"),
		},
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", v)
		}
		cfg.HTTP.RateLimitPerMinute = n
	}

	if v := os.Getenv("REDACT_UPSTREAM_ERRORS"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid REDACT_UPSTREAM_ERRORS %q: %w", v, err)
		}
		cfg.HTTP.RedactUpstreamErrors = b
	}

	cfg.S3.UseSSL = true
	if v := os.Getenv("S3_USE_SSL"); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid S3_USE_SSL %q: %w", v, err)
		}
		cfg.S3.UseSSL = b
	}

	if v := os.Getenv("TELEGRAM_ALERT_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALERT_CHAT_ID %q: %w", v, err)
		}
		cfg.Telegram.ChatID = id
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() error {
	if c.Port == "" {
		c.Port = "3001"
	}
	if c.FilesDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		c.FilesDir = wd
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = openai.GPT4o
	}
	if c.OpenAI.STTModel == "" {
		c.OpenAI.STTModel = openai.Whisper1
	}
	if c.OpenAI.TTSModel == "" {
		c.OpenAI.TTSModel = string(openai.TTSModel1)
	}
	if c.OpenAI.TTSVoice == "" {
		c.OpenAI.TTSVoice = string(openai.VoiceShimmer)
	}
	return nil
}
