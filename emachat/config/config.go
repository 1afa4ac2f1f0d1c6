package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ChatbotEndpoint is the single socket the client talks to.
const ChatbotEndpoint = "ws://localhost:8100/stream/chatbot/ws/"

type Config struct {
	LogDir       string        `yaml:"log_dir"`
	LogLevel     string        `yaml:"log_level"`
	UserLabel    string        `yaml:"user_label"`
	BotLabel     string        `yaml:"bot_label"`
	Placeholder  string        `yaml:"placeholder"`
	Markdown     bool          `yaml:"markdown"`
	EchoBotAddr  string        `yaml:"echobot_addr"`
	EchoBotDelay time.Duration `yaml:"echobot_delay"`
}

func defaults() Config {
	return Config{
		LogDir:       "./logs",
		LogLevel:     "info",
		UserLabel:    "Me",
		BotLabel:     "ChatGPT",
		Placeholder:  "Pergunte a Ema IA",
		EchoBotAddr:  ":8100",
		EchoBotDelay: 80 * time.Millisecond,
	}
}

// LoadConfig layers defaults, an optional YAML file and the environment, in
// that order. path may be empty; EMACHAT_CONFIG is used then.
func LoadConfig(path string) (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := defaults()
	if path == "" {
		path = os.Getenv("EMACHAT_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.LogDir = getEnv("EMACHAT_LOG_DIR", cfg.LogDir)
	cfg.LogLevel = getEnv("EMACHAT_LOG_LEVEL", cfg.LogLevel)
	cfg.UserLabel = getEnv("EMACHAT_USER_LABEL", cfg.UserLabel)
	cfg.BotLabel = getEnv("EMACHAT_BOT_LABEL", cfg.BotLabel)
	cfg.Placeholder = getEnv("EMACHAT_PLACEHOLDER", cfg.Placeholder)
	cfg.EchoBotAddr = getEnv("ECHOBOT_ADDR", cfg.EchoBotAddr)
	if v := os.Getenv("EMACHAT_MARKDOWN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, err
		}
		cfg.Markdown = b
	}
	if v := os.Getenv("ECHOBOT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, err
		}
		cfg.EchoBotDelay = d
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
